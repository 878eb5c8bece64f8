package mock

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/saravenpi/chatflow/internal/models"
)

var ErrUnknownChannel = errors.New("unknown channel")

// DB is the in-memory directory of channels, messages and shared items the
// application starts from. Nothing is written to disk.
type DB struct {
	db *sql.DB
}

// Open creates a fresh in-memory database and seeds it with the fixtures.
func Open() (*DB, error) {
	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// Every connection to :memory: is a separate database.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	if err := seed(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to seed database: %w", err)
	}

	return &DB{db: db}, nil
}

func (d *DB) Close() error {
	return d.db.Close()
}

// Channels returns every channel in sidebar order.
func (d *DB) Channels() ([]models.Channel, error) {
	rows, err := d.db.Query(`
		SELECT id, name, type, unread
		FROM channel
		ORDER BY position ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query channels: %w", err)
	}
	defer rows.Close()

	var channels []models.Channel
	for rows.Next() {
		var ch models.Channel
		var channelType string
		if err := rows.Scan(&ch.ID, &ch.Name, &channelType, &ch.Unread); err != nil {
			return nil, fmt.Errorf("failed to scan channel: %w", err)
		}
		ch.Type = models.ChannelType(channelType)
		channels = append(channels, ch)
	}

	return channels, rows.Err()
}

func (d *DB) Channel(id string) (models.Channel, error) {
	var ch models.Channel
	var channelType string
	err := d.db.QueryRow(`SELECT id, name, type, unread FROM channel WHERE id = ?`, id).
		Scan(&ch.ID, &ch.Name, &channelType, &ch.Unread)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Channel{}, fmt.Errorf("%w: %s", ErrUnknownChannel, id)
	}
	if err != nil {
		return models.Channel{}, fmt.Errorf("failed to query channel: %w", err)
	}
	ch.Type = models.ChannelType(channelType)
	return ch, nil
}

// MarkChannelRead clears the unread counter of a channel.
func (d *DB) MarkChannelRead(id string) error {
	if _, err := d.db.Exec(`UPDATE channel SET unread = 0 WHERE id = ?`, id); err != nil {
		return fmt.Errorf("failed to mark channel as read: %w", err)
	}
	return nil
}

// Messages returns the fixture messages of a channel in timeline order, with
// timestamps placed relative to now. Channels without fixtures get a single
// welcome message.
func (d *DB) Messages(channelID string, now time.Time) ([]models.Message, error) {
	rows, err := d.db.Query(`
		SELECT id, sender_id, sender_name, COALESCE(sender_avatar, ''), content, age_ms, is_admin
		FROM message
		WHERE channel_id = ?
		ORDER BY age_ms DESC, ROWID ASC
	`, channelID)
	if err != nil {
		return nil, fmt.Errorf("failed to query messages: %w", err)
	}

	var messages []models.Message
	index := make(map[string]int)
	for rows.Next() {
		var msg models.Message
		var ageMs int64
		if err := rows.Scan(&msg.ID, &msg.Sender.ID, &msg.Sender.Name, &msg.Sender.Avatar, &msg.Content, &ageMs, &msg.IsAdmin); err != nil {
			rows.Close()
			return nil, fmt.Errorf("failed to scan message: %w", err)
		}
		msg.Timestamp = now.Add(-time.Duration(ageMs) * time.Millisecond)
		index[msg.ID] = len(messages)
		messages = append(messages, msg)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, fmt.Errorf("failed to read messages: %w", err)
	}
	rows.Close()

	if len(messages) == 0 {
		return []models.Message{welcomeMessage(channelID, now)}, nil
	}

	if err := d.loadAttachments(channelID, messages, index); err != nil {
		return nil, err
	}
	if err := d.loadReactions(channelID, messages, index); err != nil {
		return nil, err
	}

	return messages, nil
}

func (d *DB) loadAttachments(channelID string, messages []models.Message, index map[string]int) error {
	rows, err := d.db.Query(`
		SELECT message_id, type, url, name, COALESCE(preview, '')
		FROM attachment
		WHERE channel_id = ?
		ORDER BY position ASC
	`, channelID)
	if err != nil {
		return fmt.Errorf("failed to query attachments: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var messageID, attachmentType string
		var a models.Attachment
		if err := rows.Scan(&messageID, &attachmentType, &a.URL, &a.Name, &a.Preview); err != nil {
			return fmt.Errorf("failed to scan attachment: %w", err)
		}
		a.Type = models.AttachmentType(attachmentType)
		if i, ok := index[messageID]; ok {
			messages[i].Attachments = append(messages[i].Attachments, a)
		}
	}

	return rows.Err()
}

func (d *DB) loadReactions(channelID string, messages []models.Message, index map[string]int) error {
	rows, err := d.db.Query(`
		SELECT r.message_id, r.emoji, COUNT(ru.user_id), COALESCE(GROUP_CONCAT(ru.user_id), '')
		FROM reaction r
		LEFT JOIN reaction_user ru
			ON ru.channel_id = r.channel_id AND ru.message_id = r.message_id AND ru.emoji = r.emoji
		WHERE r.channel_id = ?
		GROUP BY r.message_id, r.emoji
		ORDER BY MIN(r.position) ASC
	`, channelID)
	if err != nil {
		return fmt.Errorf("failed to query reactions: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var messageID, users string
		var r models.Reaction
		if err := rows.Scan(&messageID, &r.Emoji, &r.Count, &users); err != nil {
			return fmt.Errorf("failed to scan reaction: %w", err)
		}
		if users != "" {
			r.Users = strings.Split(users, ",")
		}
		if i, ok := index[messageID]; ok {
			messages[i].Reactions = append(messages[i].Reactions, r)
		}
	}

	return rows.Err()
}

// SharedItems returns the media and files shown in the info panel, newest first.
func (d *DB) SharedItems(now time.Time) ([]models.SharedItem, error) {
	rows, err := d.db.Query(`
		SELECT id, type, name, url, COALESCE(preview, ''), added_by, age_ms
		FROM shared_item
		ORDER BY age_ms ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query shared items: %w", err)
	}
	defer rows.Close()

	var items []models.SharedItem
	for rows.Next() {
		var item models.SharedItem
		var itemType string
		var ageMs int64
		if err := rows.Scan(&item.ID, &itemType, &item.Name, &item.URL, &item.Preview, &item.AddedBy, &ageMs); err != nil {
			return nil, fmt.Errorf("failed to scan shared item: %w", err)
		}
		item.Type = models.AttachmentType(itemType)
		item.Date = now.Add(-time.Duration(ageMs) * time.Millisecond)
		items = append(items, item)
	}

	return items, rows.Err()
}

func welcomeMessage(channelID string, now time.Time) models.Message {
	return models.Message{
		ID:        "new1",
		Content:   "Welcome to the channel! This is where we'll collaborate on " + channelID + " related topics.",
		Sender:    models.Sender{ID: "user-1", Name: "Your Name"},
		Timestamp: now.Add(-24 * time.Hour),
	}
}
