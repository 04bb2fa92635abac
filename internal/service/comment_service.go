package service

import (
	"context"
	"fmt"
	"log"
	"sort"

	"blogapi/internal/apperr"
	"blogapi/internal/cache"
	"blogapi/internal/models"
	"blogapi/internal/pagination"
	"blogapi/internal/repository"
)

// maxCommentDepth bounds reply traversal so malformed parent chains can never
// recurse without limit.
const maxCommentDepth = 64

type CommentService interface {
	Create(ctx context.Context, actor *models.User, postID int64, content string, parentID *int64) (*models.Comment, error)
	// ListTree returns one page of root comments with their reply trees
	// attached. Pagination counts root comments only.
	ListTree(ctx context.Context, postID int64, page, size int) (*pagination.Page[*models.CommentNode], error)
}

type commentService struct {
	commentRepo repository.CommentRepository
	postRepo    repository.PostRepository
	cache       *cache.Cache
}

func NewCommentService(commentRepo repository.CommentRepository, postRepo repository.PostRepository, c *cache.Cache) CommentService {
	return &commentService{
		commentRepo: commentRepo,
		postRepo:    postRepo,
		cache:       c,
	}
}

func (s *commentService) Create(ctx context.Context, actor *models.User, postID int64, content string, parentID *int64) (*models.Comment, error) {
	if err := CheckPermission(actor, nil, false); err != nil {
		return nil, err
	}
	if content == "" {
		return nil, fmt.Errorf("%w: content is required", apperr.ErrValidation)
	}

	if _, err := s.postRepo.GetByID(ctx, postID); err != nil {
		return nil, err
	}

	comment := &models.Comment{
		Content: content,
		UserID:  actor.ID,
		PostID:  postID,
	}

	if parentID != nil {
		parent, err := s.commentRepo.GetByID(ctx, *parentID)
		if err != nil {
			return nil, err
		}
		if parent.PostID != postID {
			return nil, fmt.Errorf("%w: parent comment belongs to another post", apperr.ErrValidation)
		}

		comment.ParentID = parentID
		// the thread root is the parent's root, or the parent itself when
		// the parent is a root comment
		if parent.RootID != nil {
			comment.RootID = parent.RootID
		} else {
			rootID := parent.ID
			comment.RootID = &rootID
		}
	}

	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}

	// comment counts feed the cached post listings
	if s.cache != nil {
		if err := s.cache.DeletePrefix(ctx, postCachePrefix); err != nil {
			log.Printf("warning: failed to invalidate post listing cache: %v", err)
		}
	}

	return comment, nil
}

func (s *commentService) ListTree(ctx context.Context, postID int64, page, size int) (*pagination.Page[*models.CommentNode], error) {
	if _, err := s.postRepo.GetByID(ctx, postID); err != nil {
		return nil, err
	}

	comments, err := s.commentRepo.ListByPost(ctx, postID)
	if err != nil {
		return nil, err
	}

	nodes, totalRoots := BuildCommentTree(comments, page, size)
	return pagination.New(nodes, totalRoots, page, size), nil
}

// BuildCommentTree assembles the nested reply structure for one page of root
// comments from the flat comment set of a post.
//
// Roots are ordered newest first; replies oldest first (ties break on id).
// The walk keeps a visited set and a depth cap, so it terminates even if the
// stored parent references form a cycle. The returned total counts root
// comments, which is what pagination metadata is computed from.
func BuildCommentTree(comments []models.Comment, page, size int) ([]*models.CommentNode, int) {
	children := make(map[int64][]models.Comment)
	var roots []models.Comment

	for _, c := range comments {
		if c.ParentID == nil {
			roots = append(roots, c)
			continue
		}
		children[*c.ParentID] = append(children[*c.ParentID], c)
	}

	sort.Slice(roots, func(i, j int) bool {
		if !roots[i].CreatedAt.Equal(roots[j].CreatedAt) {
			return roots[i].CreatedAt.After(roots[j].CreatedAt)
		}
		return roots[i].ID > roots[j].ID
	})
	for _, kids := range children {
		sort.Slice(kids, func(i, j int) bool {
			if !kids[i].CreatedAt.Equal(kids[j].CreatedAt) {
				return kids[i].CreatedAt.Before(kids[j].CreatedAt)
			}
			return kids[i].ID < kids[j].ID
		})
	}

	total := len(roots)

	offset, limit := pagination.Window(page, size)
	if offset > total {
		offset = total
	}
	end := offset + limit
	if end > total {
		end = total
	}

	visited := make(map[int64]bool)
	nodes := make([]*models.CommentNode, 0, end-offset)
	for _, root := range roots[offset:end] {
		visited[root.ID] = true
		node := &models.CommentNode{Comment: root}
		attachReplies(node, children, visited, 1)
		nodes = append(nodes, node)
	}

	return nodes, total
}

func attachReplies(node *models.CommentNode, children map[int64][]models.Comment, visited map[int64]bool, depth int) {
	node.Replies = []*models.CommentNode{}
	if depth >= maxCommentDepth {
		return
	}

	for _, kid := range children[node.ID] {
		if visited[kid.ID] {
			continue
		}
		visited[kid.ID] = true
		child := &models.CommentNode{Comment: kid}
		attachReplies(child, children, visited, depth+1)
		node.Replies = append(node.Replies, child)
	}
}
