package comment

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/inkflow/blog-core/internal/models"
	"github.com/inkflow/blog-core/internal/pkg/pagination"
)

type Service struct {
	db         *gorm.DB
	allowGuest bool
}

func NewService(db *gorm.DB, allowGuest bool) *Service {
	return &Service{db: db, allowGuest: allowGuest}
}

// Tree returns the full comment tree of an article, newest roots first.
// Replies are grouped under their parent; a reply whose parent is gone is
// promoted to the root level so no comment ever disappears from the output.
func (s *Service) Tree(articleID uint) ([]*Node, error) {
	var a models.Article
	if err := s.db.Select("id").First(&a, articleID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errArticleNotFound
		}
		return nil, err
	}

	var comments []models.Comment
	err := s.db.Where("article_id = ?", articleID).
		Order("created_at DESC").
		Find(&comments).Error
	if err != nil {
		return nil, err
	}

	users, err := s.loadUsers(comments)
	if err != nil {
		return nil, err
	}

	nodes := make(map[uint]*Node, len(comments))
	for i := range comments {
		nodes[comments[i].ID] = s.toNode(&comments[i], users)
	}

	roots := make([]*Node, 0)
	for i := range comments {
		n := nodes[comments[i].ID]
		pid := comments[i].ParentID
		if pid != nil {
			if parent, ok := nodes[*pid]; ok {
				parent.Replies = append(parent.Replies, n)
				continue
			}
		}
		roots = append(roots, n)
	}
	return roots, nil
}

// Create stores a comment from the public site.
func (s *Service) Create(dto *CreateDTO, user *models.User) (*models.Comment, error) {
	var a models.Article
	if err := s.db.Select("id", "status").First(&a, dto.ArticleID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errArticleNotFound
		}
		return nil, err
	}

	if dto.ParentID != nil {
		var parent models.Comment
		if err := s.db.First(&parent, *dto.ParentID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, errCommentNotFound
			}
			return nil, err
		}
		if parent.ArticleID != dto.ArticleID {
			return nil, errParentMismatch
		}
	}

	cm := models.Comment{
		Content:   strings.TrimSpace(dto.Content),
		ArticleID: dto.ArticleID,
		ParentID:  dto.ParentID,
	}
	if user != nil {
		// Bans take effect even on tokens issued before the ban.
		if !user.IsActive() {
			return nil, errAccountDisabled
		}
		cm.UserID = &user.ID
		cm.Nickname = displayName(user)
		cm.Email = user.Email
		cm.IsAdmin = user.IsAdmin()
	} else {
		if !s.allowGuest {
			return nil, errGuestForbidden
		}
		cm.Nickname = strings.TrimSpace(dto.Nickname)
		cm.Email = strings.TrimSpace(dto.Email)
		if cm.Nickname == "" || cm.Email == "" {
			return nil, errGuestIncomplete
		}
	}

	if err := s.db.Create(&cm).Error; err != nil {
		return nil, err
	}
	return &cm, nil
}

// AdminList is the paginated console view. The keyword matches comment
// content, commenter username and article title.
func (s *Service) AdminList(q pagination.Query, keyword string) ([]AdminRow, int64, error) {
	tx := s.db.Model(&models.Comment{}).
		Select("comments.id, comments.content, comments.article_id, articles.title AS article_title, " +
			"comments.parent_id, comments.user_id, COALESCE(users.username, '') AS username, " +
			"users.role AS user_role, users.status AS user_status, " +
			"comments.nickname, comments.is_admin, comments.created_at").
		Joins("LEFT JOIN articles ON articles.id = comments.article_id").
		Joins("LEFT JOIN users ON users.id = comments.user_id").
		Order("comments.created_at DESC")
	if keyword != "" {
		like := "%" + keyword + "%"
		tx = tx.Where("comments.content LIKE ? OR users.username LIKE ? OR articles.title LIKE ?", like, like, like)
	}

	var rows []AdminRow
	total, err := pagination.Paginate(tx, q, &rows)
	if err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

// Reply posts an admin reply under an existing comment.
func (s *Service) Reply(dto *ReplyDTO, admin *models.User) (*models.Comment, error) {
	var parent models.Comment
	if err := s.db.First(&parent, dto.CommentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errCommentNotFound
		}
		return nil, err
	}

	cm := models.Comment{
		Content:   strings.TrimSpace(dto.Content),
		ArticleID: parent.ArticleID,
		ParentID:  &parent.ID,
		UserID:    &admin.ID,
		Nickname:  displayName(admin),
		Email:     admin.Email,
		IsAdmin:   true,
	}
	if err := s.db.Create(&cm).Error; err != nil {
		return nil, err
	}
	return &cm, nil
}

// Delete removes a comment and its direct replies. Deeper descendants keep
// their rows and surface at the root of the tree.
func (s *Service) Delete(id uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var cm models.Comment
		if err := tx.First(&cm, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errCommentNotFound
			}
			return err
		}
		if err := tx.Where("parent_id = ?", id).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		return tx.Delete(&cm).Error
	})
}

func (s *Service) loadUsers(comments []models.Comment) (map[uint]*models.User, error) {
	ids := make([]uint, 0, len(comments))
	seen := make(map[uint]struct{})
	for i := range comments {
		if comments[i].UserID == nil {
			continue
		}
		id := *comments[i].UserID
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	users := make(map[uint]*models.User, len(ids))
	if len(ids) == 0 {
		return users, nil
	}

	var list []models.User
	if err := s.db.Where("id IN ?", ids).Find(&list).Error; err != nil {
		return nil, err
	}
	for i := range list {
		users[list[i].ID] = &list[i]
	}
	return users, nil
}

func (s *Service) toNode(cm *models.Comment, users map[uint]*models.User) *Node {
	n := &Node{
		ID:        cm.ID,
		Content:   cm.Content,
		ArticleID: cm.ArticleID,
		ParentID:  cm.ParentID,
		Nickname:  cm.Nickname,
		IsAdmin:   cm.IsAdmin,
		CreatedAt: cm.CreatedAt,
		Replies:   []*Node{},
	}
	if cm.UserID != nil {
		if u, ok := users[*cm.UserID]; ok {
			n.User = &UserRef{ID: u.ID, Username: u.Username, Role: u.Role}
			n.Nickname = displayName(u)
			n.Avatar = u.Avatar
		}
	}
	return n
}

func displayName(u *models.User) string {
	if u.Nickname != "" {
		return u.Nickname
	}
	return u.Username
}
