package app

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"quiz-app/internal/domain"
)

// MinPasswordLength matches what the registration form always enforced.
const MinPasswordLength = 4

// PlayerRepository abstracts account storage.
type PlayerRepository interface {
	// CreatePlayer inserts a new account and returns its id.
	// Returns domain.ErrUsernameTaken when the username is present.
	CreatePlayer(ctx context.Context, username string, passwordHash []byte) (int64, error)
	// PlayerByUsername returns nil (without error) when the account does not exist.
	PlayerByUsername(ctx context.Context, username string) (*domain.Player, error)
	// SavePlayerSession persists the login token and its issue time.
	SavePlayerSession(ctx context.Context, playerID int64, token string, issuedAt time.Time) error
	// Players lists accounts, optionally excluding one id (duel opponent pickers).
	Players(ctx context.Context, excludeID int64) ([]domain.Player, error)
}

// AuthService registers and authenticates local accounts.
type AuthService struct {
	players  PlayerRepository
	now      func() time.Time
	newToken func() string
}

// LoginResult is handed to the presentation layer after a successful login.
type LoginResult struct {
	PlayerID int64
	Username string
	Token    string
}

func NewAuthService(players PlayerRepository) *AuthService {
	return &AuthService{
		players: players,
		now:     func() time.Time { return time.Now().UTC() },
		// Random v4 tokens: the token must not be derivable from
		// username or login time.
		newToken: func() string { return uuid.NewString() },
	}
}

// Register creates a new account with a bcrypt password hash.
func (s *AuthService) Register(ctx context.Context, username, password string) error {
	username = strings.TrimSpace(username)
	if username == "" || len(password) < MinPasswordLength {
		return domain.ErrInvalidRegistration
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	_, err = s.players.CreatePlayer(ctx, username, hash)
	return err
}

// Login verifies credentials and issues a fresh session token.
// Unknown usernames and wrong passwords are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	player, err := s.players.PlayerByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		return nil, err
	}
	if player == nil {
		return nil, domain.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword(player.PasswordHash, []byte(password)); err != nil {
		return nil, domain.ErrInvalidCredentials
	}
	token := s.newToken()
	if err := s.players.SavePlayerSession(ctx, player.ID, token, s.now()); err != nil {
		return nil, err
	}
	return &LoginResult{PlayerID: player.ID, Username: player.Username, Token: token}, nil
}

// Opponents lists every other account a player can challenge to a duel.
func (s *AuthService) Opponents(ctx context.Context, playerID int64) ([]domain.Player, error) {
	return s.players.Players(ctx, playerID)
}
