package gamedto

type CreateGameResponse struct {
	GameID            string `json:"game_id"`
	PlayerOneUsername string `json:"player_one_username"`
	PlayerOnePassword string `json:"player_one_password"`
}

type JoinGameResponse struct {
	GameID            string `json:"game_id"`
	PlayerTwoUsername string `json:"player_two_username"`
	PlayerTwoPassword string `json:"player_two_password"`
}

// GameStateResponse is returned by both get-game and make-move. Pieces maps
// piece symbols (uppercase white, lowercase black) to occupied squares.
type GameStateResponse struct {
	GameID       string              `json:"game_id"`
	WhoseTurn    int                 `json:"whose_turn"`
	Pieces       map[string][]string `json:"pieces"`
	LegalMoves   []string            `json:"legal_moves"`
	PlayerID     int                 `json:"player_id"`
	EnPassant    bool                `json:"en_passant"`
	PreviousMove string              `json:"previous_move,omitempty"`
	Graveyard    []string            `json:"graveyard,omitempty"`
	PieceTaken   map[string][]string `json:"piece_taken,omitempty"`
}

// ErrorResponse wraps every non-2xx body.
type ErrorResponse struct {
	Message string `json:"message"`
}

// SocketEvent is a server-to-client websocket frame.
type SocketEvent struct {
	Event string `json:"event"`
}

// SocketEcho answers unrecognized websocket frames.
type SocketEcho struct {
	Echo string `json:"echo"`
}
