// Package gamedto holds the wire types of the HTTP and websocket API.
package gamedto

type CreateGameRequest struct{}

type JoinGameRequest struct {
	GameID string `json:"game_id"`
}

type GetGameRequest struct {
	GameID   string `json:"game_id"`
	Password string `json:"password"`
}

type MakeMoveRequest struct {
	GameID   string `json:"game_id"`
	Password string `json:"password"`
	Move     string `json:"move"`
}

type CheckTurnRequest struct {
	GameID   string `json:"game_id"`
	Password string `json:"password"`
}

// RegisterRequest is the first frame a websocket client sends.
type RegisterRequest struct {
	GameID   string `json:"game_id"`
	Password string `json:"password"`
}
