package domain

import "errors"

var (
	// ErrUsernameTaken is returned when registering a username that already exists.
	ErrUsernameTaken = errors.New("username already taken")
	// ErrInvalidCredentials covers both unknown username and wrong password;
	// callers must not learn which part failed.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrInvalidRegistration rejects a registration with an empty username
	// or a password below the minimum length.
	ErrInvalidRegistration = errors.New("invalid registration data")
	// ErrNoQuestionsAvailable means the bank has no playable question left
	// for the requested category and difficulty.
	ErrNoQuestionsAvailable = errors.New("no questions available")
	// ErrMalformedQuestion marks a question without exactly one correct and
	// at least three incorrect answers. Such questions are never played.
	ErrMalformedQuestion = errors.New("malformed question data")
	// ErrQuestionNotFound indicates an unknown question id.
	ErrQuestionNotFound = errors.New("question not found")
	// ErrCategoryExists is returned when adding a duplicate category label.
	ErrCategoryExists = errors.New("category already exists")
	// ErrCategoryInUse is returned when deleting a category that still has questions.
	ErrCategoryInUse = errors.New("category still in use")
	// ErrGameNotFound indicates an unknown game id.
	ErrGameNotFound = errors.New("game not found")
	// ErrGameFinished rejects mutations of a completed game.
	ErrGameFinished = errors.New("game already finished")
	// ErrNoPlayers rejects game creation with an empty player list.
	ErrNoPlayers = errors.New("game needs at least one player")
	// ErrPlayerNotInGame is returned for submissions by a non-participant.
	ErrPlayerNotInGame = errors.New("player not part of this game")
	// ErrRoundNotActive rejects submissions while no round is accepting answers.
	ErrRoundNotActive = errors.New("round not active")
	// ErrRoundInProgress rejects transitions while a round is still open.
	ErrRoundInProgress = errors.New("round still in progress")
	// ErrAlreadyAnswered rejects a second submission for the same round.
	ErrAlreadyAnswered = errors.New("round already answered")
)
