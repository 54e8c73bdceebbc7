package service

import (
	"context"

	"blogCPT/internal/repository"
)

type VoteService interface {
	Toggle(ctx context.Context, postID int64, userID string) (bool, error)
}

type voteService struct {
	voteRepo repository.VoteRepository
	postRepo repository.PostRepository
}

func NewVoteService(voteRepo repository.VoteRepository, postRepo repository.PostRepository) VoteService {
	return &voteService{voteRepo: voteRepo, postRepo: postRepo}
}

// Toggle переключает голос и возвращает итоговое состояние liked
func (s *voteService) Toggle(ctx context.Context, postID int64, userID string) (bool, error) {
	// голосовать можно только за существующий пост
	if _, err := s.postRepo.GetByID(ctx, postID); err != nil {
		return false, err
	}

	return s.voteRepo.Toggle(ctx, postID, userID)
}
