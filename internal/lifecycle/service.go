// Package lifecycle implements the game lifecycle: create, join, fetch,
// move, turn polling, and websocket registration. Board state is always
// derived from the stored move record; the service never trusts a cached
// board.
package lifecycle

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/kapu/chesslink/internal/engine"
	"github.com/kapu/chesslink/internal/ident"
	"github.com/kapu/chesslink/internal/obslog"
	"github.com/kapu/chesslink/internal/push"
	"github.com/kapu/chesslink/internal/session"
)

// Usernames are fixed until account support lands; they still pass the
// profanity screen so a changed default cannot slip through unchecked.
const (
	playerOneName = "Player 1"
	playerTwoName = "Player 2"
)

// createAttempts bounds the id-collision retry loop on create.
const createAttempts = 5

// Notifier delivers an event to a registered websocket connection.
type Notifier interface {
	Push(ctx context.Context, connID, event string) error
}

// WordFilter screens usernames.
type WordFilter interface {
	Contains(text string) bool
}

type Service struct {
	store    *session.Store
	filter   WordFilter
	notifier Notifier
	logger   *zap.Logger
	now      func() time.Time
}

func NewService(store *session.Store, filter WordFilter, notifier Notifier) *Service {
	return &Service{
		store:    store,
		filter:   filter,
		notifier: notifier,
		logger:   obslog.L(),
		now:      time.Now,
	}
}

// CreateResult carries the host's invite credentials.
type CreateResult struct {
	GameID            string `json:"game_id"`
	PlayerOneUsername string `json:"player_one_username"`
	PlayerOnePassword string `json:"player_one_password"`
}

// JoinResult carries the guest's credentials.
type JoinResult struct {
	GameID            string `json:"game_id"`
	PlayerTwoUsername string `json:"player_two_username"`
	PlayerTwoPassword string `json:"player_two_password"`
}

// GameView is the derived per-request snapshot returned by Get and Move.
type GameView struct {
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

// Create starts a fresh game with seat one occupied. The generated game id
// doubles as the invite link, so collisions are retried with a new id.
func (s *Service) Create(ctx context.Context) (*CreateResult, error) {
	if s.filter.Contains(playerOneName) {
		return nil, ErrUsernameRejected
	}

	line, err := engine.ParseRecord("")
	if err != nil {
		return nil, ErrCorrupted
	}
	record := engine.SerializeRecord(line)

	var lastErr error
	for i := 0; i < createAttempts; i++ {
		gameID, err := ident.NewGameID()
		if err != nil {
			return nil, ErrStorage
		}
		password, err := ident.NewPassword()
		if err != nil {
			return nil, ErrStorage
		}
		now := s.now()
		sess := &session.GameSession{
			GameID:            gameID,
			PlayerOneUsername: playerOneName,
			PlayerOnePassword: password,
			MoveRecord:        record,
			WhoseTurn:         engine.SeatOne,
			Version:           1,
			CreatedAt:         now,
		}
		sess.Touch(now, s.store.TTL())

		err = s.store.Create(ctx, sess)
		if err == nil {
			s.logger.Info("game created", zap.String("game_id", sess.GameID))
			return &CreateResult{
				GameID:            sess.GameID,
				PlayerOneUsername: sess.PlayerOneUsername,
				PlayerOnePassword: sess.PlayerOnePassword,
			}, nil
		}
		if errors.Is(err, session.ErrAlreadyExists) {
			lastErr = err
			continue
		}
		s.logger.Error("game create failed", zap.Error(err))
		return nil, ErrStorage
	}
	s.logger.Error("game id space exhausted retries", zap.Error(lastErr))
	return nil, ErrStorage
}

// Join seats player two. Joining is guarded by the game id alone; the id is
// the invite secret. A second join attempt fails.
func (s *Service) Join(ctx context.Context, gameID string) (*JoinResult, error) {
	if s.filter.Contains(playerTwoName) {
		return nil, ErrUsernameRejected
	}

	sess, err := s.load(ctx, gameID)
	if err != nil {
		return nil, err
	}
	if sess.Joined() {
		return nil, ErrAlreadyJoined
	}

	password, err := ident.NewPassword()
	if err != nil {
		return nil, ErrStorage
	}
	sess.PlayerTwoUsername = playerTwoName
	sess.PlayerTwoPassword = password
	sess.Touch(s.now(), s.store.TTL())

	if err := s.update(ctx, sess); err != nil {
		return nil, err
	}
	s.logger.Info("player joined", zap.String("game_id", sess.GameID))
	return &JoinResult{
		GameID:            sess.GameID,
		PlayerTwoUsername: sess.PlayerTwoUsername,
		PlayerTwoPassword: sess.PlayerTwoPassword,
	}, nil
}

// Get authenticates a seat and returns the derived state.
func (s *Service) Get(ctx context.Context, gameID, password string) (*GameView, error) {
	sess, err := s.load(ctx, gameID)
	if err != nil {
		return nil, err
	}
	seat, err := seatFor(sess, password)
	if err != nil {
		return nil, err
	}
	line, err := engine.ParseRecord(sess.MoveRecord)
	if err != nil {
		return nil, ErrCorrupted
	}
	return s.view(sess, seat, line)
}

// Move plays one ply for the authenticated seat, persists the extended
// record, and notifies the opponent's connection when one is registered.
// Notification failures never fail the move.
func (s *Service) Move(ctx context.Context, gameID, password, moveText string) (*GameView, error) {
	sess, err := s.load(ctx, gameID)
	if err != nil {
		return nil, err
	}
	seat, err := seatFor(sess, password)
	if err != nil {
		return nil, err
	}

	line, err := engine.ParseRecord(sess.MoveRecord)
	if err != nil {
		return nil, ErrCorrupted
	}
	sideToMove, err := engine.SideToMove(line)
	if err != nil {
		return nil, ErrCorrupted
	}
	if sideToMove != seat {
		return nil, ErrNotYourTurn
	}

	next, capture, err := engine.ApplyMove(line, moveText)
	if err != nil {
		if errors.Is(err, engine.ErrIllegalMove) {
			return nil, ErrIllegalMove
		}
		return nil, ErrCorrupted
	}

	sess.MoveRecord = engine.SerializeRecord(next)
	sess.WhoseTurn = otherSeat(seat)
	sess.PreviousMove = strings.ToLower(strings.TrimSpace(moveText))
	sess.EnPassant = false
	sess.PieceTaken = nil
	if capture != nil {
		sess.EnPassant = capture.EnPassant
		sess.PieceTaken = map[string][]string{capture.Symbol: {capture.Square}}
		sess.Graveyard = append(sess.Graveyard, capture.Symbol)
	}
	sess.Touch(s.now(), s.store.TTL())

	if err := s.update(ctx, sess); err != nil {
		return nil, err
	}

	s.notifyOpponent(ctx, sess, seat)

	return s.view(sess, seat, next)
}

// CheckTurn reports whether the authenticated seat is to move.
func (s *Service) CheckTurn(ctx context.Context, gameID, password string) (bool, error) {
	sess, err := s.load(ctx, gameID)
	if err != nil {
		return false, err
	}
	seat, err := seatFor(sess, password)
	if err != nil {
		return false, err
	}
	return sess.WhoseTurn == seat, nil
}

// RegisterConnection stores connID against the authenticated seat and
// returns the event the socket should receive right away: "move" when it is
// already that seat's turn, "registered" otherwise.
func (s *Service) RegisterConnection(ctx context.Context, gameID, password, connID string) (string, error) {
	sess, err := s.load(ctx, gameID)
	if err != nil {
		return "", err
	}
	seat, err := seatFor(sess, password)
	if err != nil {
		return "", err
	}

	if seat == engine.SeatOne {
		sess.PlayerOneConnectionID = connID
	} else {
		sess.PlayerTwoConnectionID = connID
	}
	sess.Touch(s.now(), s.store.TTL())

	if err := s.update(ctx, sess); err != nil {
		return "", err
	}
	s.logger.Info("connection registered",
		zap.String("game_id", sess.GameID), zap.Int("seat", seat), zap.String("conn_id", connID))

	if sess.WhoseTurn == seat {
		return push.EventMove, nil
	}
	return push.EventRegistered, nil
}

func (s *Service) load(ctx context.Context, gameID string) (*session.GameSession, error) {
	sess, err := s.store.Get(ctx, gameID)
	if errors.Is(err, session.ErrNotFound) {
		return nil, ErrGameNotFound
	}
	if errors.Is(err, session.ErrMalformed) {
		return nil, ErrCorrupted
	}
	if err != nil {
		s.logger.Error("session load failed", zap.String("game_id", gameID), zap.Error(err))
		return nil, ErrStorage
	}
	return sess, nil
}

func (s *Service) update(ctx context.Context, sess *session.GameSession) error {
	err := s.store.Update(ctx, sess)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, session.ErrConflict):
		return ErrConflict
	case errors.Is(err, session.ErrNotFound):
		return ErrGameNotFound
	default:
		s.logger.Error("session write failed", zap.String("game_id", sess.GameID), zap.Error(err))
		return ErrStorage
	}
}

func (s *Service) view(sess *session.GameSession, seat int, line *engine.GameLine) (*GameView, error) {
	state, err := engine.DeriveState(line)
	if err != nil {
		return nil, ErrCorrupted
	}
	return &GameView{
		GameID:       sess.GameID,
		WhoseTurn:    state.SideToMove,
		Pieces:       state.Occupancy,
		LegalMoves:   state.LegalMoves,
		PlayerID:     seat,
		EnPassant:    sess.EnPassant,
		PreviousMove: sess.PreviousMove,
		Graveyard:    sess.Graveyard,
		PieceTaken:   sess.PieceTaken,
	}, nil
}

// notifyOpponent pushes "move" to the other seat's connection. Gone or
// unregistered connections are logged and ignored.
func (s *Service) notifyOpponent(ctx context.Context, sess *session.GameSession, mover int) {
	if s.notifier == nil {
		return
	}
	connID := sess.PlayerTwoConnectionID
	if mover == engine.SeatTwo {
		connID = sess.PlayerOneConnectionID
	}
	if strings.TrimSpace(connID) == "" {
		return
	}
	if err := s.notifier.Push(ctx, connID, push.EventMove); err != nil {
		s.logger.Info("opponent not notified",
			zap.String("game_id", sess.GameID), zap.String("conn_id", connID), zap.Error(err))
	}
}

func seatFor(sess *session.GameSession, password string) (int, error) {
	pw := strings.TrimSpace(password)
	if pw == "" {
		return 0, ErrNotAllowed
	}
	switch pw {
	case sess.PlayerOnePassword:
		return engine.SeatOne, nil
	case sess.PlayerTwoPassword:
		return engine.SeatTwo, nil
	}
	return 0, ErrNotAllowed
}

func otherSeat(seat int) int {
	if seat == engine.SeatOne {
		return engine.SeatTwo
	}
	return engine.SeatOne
}
