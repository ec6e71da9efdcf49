package repository

import (
	"context"

	"ecosync-hub/internal/domain/message"
	ecosync_errors "ecosync-hub/pkg/errors"

	"gorm.io/gorm"
)

type PostgresMessageRepository struct {
	db *gorm.DB
}

func NewMessageRepository(db *gorm.DB) MessageRepository {
	return &PostgresMessageRepository{db: db}
}

func (r *PostgresMessageRepository) Create(ctx context.Context, m *message.Message) error {
	res := r.db.WithContext(ctx).Create(m)
	if res.Error != nil {
		return res.Error
	}
	return nil
}

// ListConversations returns, per peer the user has exchanged messages with,
// the single latest message. Ties on created_at break by highest id.
func (r *PostgresMessageRepository) ListConversations(ctx context.Context, userID uint) ([]message.ConversationSummary, error) {
	var conversations []message.ConversationSummary
	err := r.db.WithContext(ctx).Raw(`
		SELECT DISTINCT ON (other_user_id)
			CASE WHEN m.sender_id = @uid THEN m.receiver_id ELSE m.sender_id END AS other_user_id,
			u.username,
			u.avatar_url,
			m.sender_id  AS last_message_sender_id,
			m.content    AS last_message,
			m.created_at AS last_message_time,
			m.is_read
		FROM messages m
		JOIN users u ON u.id = CASE WHEN m.sender_id = @uid THEN m.receiver_id ELSE m.sender_id END
		WHERE m.sender_id = @uid OR m.receiver_id = @uid
		ORDER BY other_user_id, m.created_at DESC, m.id DESC`,
		map[string]interface{}{"uid": userID},
	).Scan(&conversations).Error
	if err != nil {
		return nil, err
	}
	return conversations, nil
}

func (r *PostgresMessageRepository) ListThread(ctx context.Context, userID, peerID uint) ([]message.ThreadMessage, error) {
	var messages []message.ThreadMessage
	err := r.db.WithContext(ctx).Raw(`
		SELECT m.id, m.sender_id, m.receiver_id, m.content, m.is_read, m.created_at,
			u.username AS sender_username
		FROM messages m
		JOIN users u ON u.id = m.sender_id
		WHERE (m.sender_id = ? AND m.receiver_id = ?) OR (m.sender_id = ? AND m.receiver_id = ?)
		ORDER BY m.created_at ASC, m.id ASC`,
		userID, peerID, peerID, userID,
	).Scan(&messages).Error
	if err != nil {
		return nil, err
	}
	return messages, nil
}

func (r *PostgresMessageRepository) MarkConversationRead(ctx context.Context, readerID, peerID uint) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&message.Message{}).
		Where("sender_id = ? AND receiver_id = ? AND is_read = false", peerID, readerID).
		Update("is_read", true)
	if res.Error != nil {
		return 0, res.Error
	}
	return res.RowsAffected, nil
}

func (r *PostgresMessageRepository) MarkMessageRead(ctx context.Context, readerID, messageID uint) error {
	res := r.db.WithContext(ctx).
		Model(&message.Message{}).
		Where("id = ? AND receiver_id = ?", messageID, readerID).
		Update("is_read", true)
	if res.Error != nil {
		return res.Error
	}
	return nil
}

func (r *PostgresMessageRepository) CountUnread(ctx context.Context, userID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&message.Message{}).
		Where("receiver_id = ? AND is_read = false", userID).
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}

func (r *PostgresMessageRepository) Delete(ctx context.Context, id, userID uint) error {
	res := r.db.WithContext(ctx).
		Delete(&message.Message{}, "id = ? AND (sender_id = ? OR receiver_id = ?)", id, userID, userID)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ecosync_errors.ErrNotFound
	}
	return nil
}
