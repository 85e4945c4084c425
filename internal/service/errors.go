package service

import (
	"errors"

	"github.com/contesthub/contest-api/internal/domain"
	"github.com/contesthub/contest-api/internal/repository"
)

var (
	ErrUserNotFound          = repository.ErrUserNotFound
	ErrUserEmailExists       = repository.ErrUserEmailExists
	ErrContestNotFound       = repository.ErrContestNotFound
	ErrParticipationNotFound = repository.ErrParticipationNotFound
	ErrAlreadyEnrolled       = repository.ErrAlreadyEnrolled
	ErrRankConflict          = repository.ErrRankConflict
	ErrUpdateFailed          = repository.ErrUpdateFailed
	ErrEntryNotFound         = repository.ErrEntryNotFound
	ErrAttachmentNotFound    = repository.ErrAttachmentNotFound
	ErrRatingNotFound        = repository.ErrRatingNotFound
	ErrNotContestant         = repository.ErrNotContestant
	ErrTooManySubmissions    = repository.ErrTooManySubmissions
	ErrAlreadyRated          = repository.ErrAlreadyRated
	ErrConversationNotFound  = repository.ErrConversationNotFound
	ErrEntryAlreadySubmitted = domain.ErrEntryAlreadySubmitted

	ErrNotJudge              = errors.New("user is not an active judge of this contest")
	ErrNotConversationMember = errors.New("user is not part of this conversation")
)
