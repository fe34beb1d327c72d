package arenahandler

type MonsterXPBody struct {
	MonID int `json:"monID" binding:"required"       example:"7"`
	XP    int `json:"xp"    binding:"required,gte=0" example:"50"`
} // @name MonsterXPRequest

type LevelUpBody struct {
	MonID int `json:"monID" binding:"required" example:"7"`
} // @name LevelUpRequest

type RenameBody struct {
	MonID int    `json:"monID" binding:"required"              example:"7"`
	Name  string `json:"name"  binding:"required,max=32"       example:"Sparky"`
} // @name RenameRequest

type ErrorResponse struct {
	Error string `json:"error"`
} // @name ErrorResponse

type ListSquaddiesQuery struct {
	UserID string `form:"userID" binding:"required"`
} // @name ListSquaddiesQuery
