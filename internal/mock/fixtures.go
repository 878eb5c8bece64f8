package mock

import (
	"database/sql"
	"fmt"
)

const schema = `
CREATE TABLE channel (
	id       TEXT PRIMARY KEY,
	name     TEXT NOT NULL,
	type     TEXT NOT NULL,
	unread   INTEGER NOT NULL DEFAULT 0,
	position INTEGER NOT NULL
);

CREATE TABLE message (
	channel_id    TEXT NOT NULL REFERENCES channel(id),
	id            TEXT NOT NULL,
	sender_id     TEXT NOT NULL,
	sender_name   TEXT NOT NULL,
	sender_avatar TEXT,
	content       TEXT NOT NULL DEFAULT '',
	age_ms        INTEGER NOT NULL,
	is_admin      BOOLEAN NOT NULL DEFAULT 0,
	PRIMARY KEY (channel_id, id)
);

CREATE TABLE attachment (
	channel_id TEXT NOT NULL,
	message_id TEXT NOT NULL,
	type       TEXT NOT NULL CHECK (type IN ('image', 'file', 'link')),
	url        TEXT NOT NULL,
	name       TEXT NOT NULL,
	preview    TEXT,
	position   INTEGER NOT NULL
);

CREATE TABLE reaction (
	channel_id TEXT NOT NULL,
	message_id TEXT NOT NULL,
	emoji      TEXT NOT NULL,
	position   INTEGER NOT NULL,
	PRIMARY KEY (channel_id, message_id, emoji)
);

CREATE TABLE reaction_user (
	channel_id TEXT NOT NULL,
	message_id TEXT NOT NULL,
	emoji      TEXT NOT NULL,
	user_id    TEXT NOT NULL
);

CREATE TABLE shared_item (
	id       TEXT PRIMARY KEY,
	type     TEXT NOT NULL,
	name     TEXT NOT NULL,
	url      TEXT NOT NULL,
	preview  TEXT,
	added_by TEXT NOT NULL,
	age_ms   INTEGER NOT NULL
);
`

const (
	minute = int64(60 * 1000)
	hour   = 60 * minute
	day    = 24 * hour
)

type channelRow struct {
	id, name, kind string
	unread         int
}

type attachmentRow struct {
	kind, url, name, preview string
}

type reactionRow struct {
	emoji string
	users []string
}

type messageRow struct {
	id, senderID, senderName, content string
	ageMs                             int64
	isAdmin                           bool
	attachments                       []attachmentRow
	reactions                         []reactionRow
}

type sharedRow struct {
	id, kind, name, url, preview, addedBy string
	ageMs                                 int64
}

var channelFixtures = []channelRow{
	{id: "general", name: "general", kind: "channel", unread: 3},
	{id: "design", name: "design", kind: "channel", unread: 0},
	{id: "marketing", name: "marketing", kind: "channel", unread: 5},
	{id: "product", name: "product", kind: "channel", unread: 0},
	{id: "engineering", name: "engineering", kind: "channel", unread: 1},
	{id: "john", name: "John Smith", kind: "direct", unread: 0},
	{id: "sarah", name: "Sarah Johnson", kind: "direct", unread: 2},
	{id: "ux-team", name: "UX Team", kind: "group", unread: 0},
}

const mockupURL = "https://images.unsplash.com/photo-1563986768609-322da13575f3"

var messageFixtures = map[string][]messageRow{
	"general": {
		{
			id: "1", senderID: "user-2", senderName: "John Smith", ageMs: 5 * hour,
			content: "Hey team, I just uploaded the new design mockups for the landing page.",
			attachments: []attachmentRow{
				{kind: "image", url: mockupURL, name: "landing-mockup.jpg", preview: mockupURL + "?w=400"},
			},
			reactions: []reactionRow{
				{emoji: "👍", users: []string{"user-1", "user-3", "user-4"}},
				{emoji: "🔥", users: []string{"user-1", "user-5"}},
			},
		},
		{id: "2", senderID: "user-3", senderName: "Sarah Johnson", ageMs: 4 * hour,
			content: "These look great! I especially like the new color scheme."},
		{id: "3", senderID: "user-2", senderName: "John Smith", ageMs: 4 * hour,
			content: "Thanks! I was thinking we could present these to the client on Thursday."},
		{
			id: "4", senderID: "user-1", senderName: "Your Name", ageMs: 3 * hour, isAdmin: true,
			content:     "Here's the presentation template we can use:",
			attachments: []attachmentRow{{kind: "file", url: "#", name: "presentation-template.pptx"}},
		},
		{id: "5", senderID: "user-4", senderName: "Mike Williams", ageMs: 2 * hour,
			content: "I'll be available for the meeting. Should we invite the marketing team as well?"},
		{id: "6", senderID: "user-1", senderName: "Your Name", ageMs: hour, isAdmin: true,
			content: "Good idea, I'll send them an invite."},
		{id: "7", senderID: "user-3", senderName: "Sarah Johnson", ageMs: 30 * minute,
			content: "Has everyone reviewed the analytics from last week? We should include those insights in the presentation."},
	},
	"design": {
		{
			id: "d1", senderID: "user-2", senderName: "John Smith", ageMs: 2 * hour,
			content:     "I've updated the design system with our new components.",
			attachments: []attachmentRow{{kind: "link", url: "#", name: "design-system.figma"}},
		},
		{id: "d2", senderID: "user-1", senderName: "Your Name", ageMs: hour, isAdmin: true,
			content: "The new icons look amazing!"},
	},
	"john":  directFixtures("user-2", "John Smith"),
	"sarah": directFixtures("sarah", "Sarah Johnson"),
}

func directFixtures(peerID, peerName string) []messageRow {
	return []messageRow{
		{id: "dm1", senderID: peerID, senderName: peerName, ageMs: 30 * minute,
			content: "Hey, do you have time for a quick chat about the project?"},
		{id: "dm2", senderID: "user-1", senderName: "Your Name", ageMs: 28*minute + 20*1000,
			content: "Sure, I'm available now if that works for you."},
		{id: "dm3", senderID: peerID, senderName: peerName, ageMs: 26*minute + 40*1000,
			content: "Great! Let's discuss the timeline for the next phase."},
	}
}

var sharedFixtures = []sharedRow{
	{id: "img-1", kind: "image", name: "project-mockup.jpg", url: mockupURL, preview: mockupURL + "?w=250", addedBy: "user-2", ageMs: hour},
	{id: "file-1", kind: "file", name: "presentation.pdf", url: "#", addedBy: "user-3", ageMs: 2 * hour},
	{id: "link-1", kind: "link", name: "Design Resources", url: "https://design.com", addedBy: "user-1", ageMs: day},
	{id: "img-2", kind: "image", name: "team-photo.jpg", url: "https://images.unsplash.com/photo-1522071820081-009f0129c71c",
		preview: "https://images.unsplash.com/photo-1522071820081-009f0129c71c?w=250", addedBy: "user-4", ageMs: 2 * day},
}

func nullable(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func seed(db *sql.DB) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for i, ch := range channelFixtures {
		if _, err := tx.Exec(`INSERT INTO channel (id, name, type, unread, position) VALUES (?, ?, ?, ?, ?)`,
			ch.id, ch.name, ch.kind, ch.unread, i); err != nil {
			return fmt.Errorf("insert channel %s: %w", ch.id, err)
		}
	}

	for channelID, rows := range messageFixtures {
		for _, m := range rows {
			if _, err := tx.Exec(`
				INSERT INTO message (channel_id, id, sender_id, sender_name, content, age_ms, is_admin)
				VALUES (?, ?, ?, ?, ?, ?, ?)`,
				channelID, m.id, m.senderID, m.senderName, m.content, m.ageMs, m.isAdmin); err != nil {
				return fmt.Errorf("insert message %s/%s: %w", channelID, m.id, err)
			}

			for pos, a := range m.attachments {
				if _, err := tx.Exec(`
					INSERT INTO attachment (channel_id, message_id, type, url, name, preview, position)
					VALUES (?, ?, ?, ?, ?, ?, ?)`,
					channelID, m.id, a.kind, a.url, a.name, nullable(a.preview), pos); err != nil {
					return fmt.Errorf("insert attachment %s: %w", a.name, err)
				}
			}

			for pos, r := range m.reactions {
				if _, err := tx.Exec(`INSERT INTO reaction (channel_id, message_id, emoji, position) VALUES (?, ?, ?, ?)`,
					channelID, m.id, r.emoji, pos); err != nil {
					return fmt.Errorf("insert reaction %s: %w", r.emoji, err)
				}
				for _, user := range r.users {
					if _, err := tx.Exec(`INSERT INTO reaction_user (channel_id, message_id, emoji, user_id) VALUES (?, ?, ?, ?)`,
						channelID, m.id, r.emoji, user); err != nil {
						return fmt.Errorf("insert reaction user %s: %w", user, err)
					}
				}
			}
		}
	}

	for _, s := range sharedFixtures {
		if _, err := tx.Exec(`
			INSERT INTO shared_item (id, type, name, url, preview, added_by, age_ms)
			VALUES (?, ?, ?, ?, ?, ?, ?)`,
			s.id, s.kind, s.name, s.url, nullable(s.preview), s.addedBy, s.ageMs); err != nil {
			return fmt.Errorf("insert shared item %s: %w", s.id, err)
		}
	}

	return tx.Commit()
}
