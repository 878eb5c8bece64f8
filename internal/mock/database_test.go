package mock

import (
	"errors"
	"testing"
	"time"

	"github.com/saravenpi/chatflow/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDB(t *testing.T) *DB {
	t.Helper()

	db, err := Open()
	if err != nil {
		t.Fatalf("open mock db: %v", err)
	}
	t.Cleanup(func() {
		if err := db.Close(); err != nil {
			t.Fatalf("close mock db: %v", err)
		}
	})

	return db
}

var testNow = time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC)

func TestChannelsInSidebarOrder(t *testing.T) {
	db := newTestDB(t)

	channels, err := db.Channels()
	require.NoError(t, err)
	require.Len(t, channels, 8)

	assert.Equal(t, models.Channel{ID: "general", Name: "general", Type: models.ChannelPublic, Unread: 3}, channels[0])
	assert.Equal(t, models.ChannelDirect, channels[5].Type)
	assert.Equal(t, "John Smith", channels[5].Name)
	assert.Equal(t, models.ChannelGroup, channels[7].Type)
}

func TestChannelLookup(t *testing.T) {
	db := newTestDB(t)

	ch, err := db.Channel("ux-team")
	require.NoError(t, err)
	assert.Equal(t, "UX Team", ch.Name)

	_, err = db.Channel("nope")
	assert.True(t, errors.Is(err, ErrUnknownChannel))
}

func TestMarkChannelRead(t *testing.T) {
	db := newTestDB(t)

	require.NoError(t, db.MarkChannelRead("sarah"))
	ch, err := db.Channel("sarah")
	require.NoError(t, err)
	assert.Zero(t, ch.Unread)
}

func TestGeneralMessages(t *testing.T) {
	db := newTestDB(t)

	messages, err := db.Messages("general", testNow)
	require.NoError(t, err)
	require.Len(t, messages, 7)

	got := make([]string, len(messages))
	for i, m := range messages {
		got[i] = m.ID
	}
	assert.Equal(t, []string{"1", "2", "3", "4", "5", "6", "7"}, got)

	first := messages[0]
	assert.Equal(t, testNow.Add(-5*time.Hour), first.Timestamp)
	require.Len(t, first.Attachments, 1)
	assert.Equal(t, models.AttachmentImage, first.Attachments[0].Type)
	assert.Equal(t, "landing-mockup.jpg", first.Attachments[0].Name)
	assert.NotEmpty(t, first.Attachments[0].Preview)

	require.Len(t, first.Reactions, 2)
	assert.Equal(t, "👍", first.Reactions[0].Emoji)
	assert.Equal(t, 3, first.Reactions[0].Count)
	assert.ElementsMatch(t, []string{"user-1", "user-3", "user-4"}, first.Reactions[0].Users)
	assert.Equal(t, 2, first.Reactions[1].Count)

	assert.True(t, messages[3].IsAdmin)
	assert.Equal(t, models.AttachmentFile, messages[3].Attachments[0].Type)
	assert.Empty(t, messages[1].Attachments)
	assert.Empty(t, messages[1].Reactions)
}

func TestDirectMessages(t *testing.T) {
	db := newTestDB(t)

	messages, err := db.Messages("sarah", testNow)
	require.NoError(t, err)
	require.Len(t, messages, 3)
	assert.Equal(t, "sarah", messages[0].Sender.ID)
	assert.Equal(t, "user-1", messages[1].Sender.ID)
	assert.True(t, messages[0].Timestamp.Before(messages[2].Timestamp))
}

func TestChannelWithoutFixturesGetsWelcome(t *testing.T) {
	db := newTestDB(t)

	messages, err := db.Messages("marketing", testNow)
	require.NoError(t, err)
	require.Len(t, messages, 1)
	assert.Contains(t, messages[0].Content, "collaborate on marketing related topics")
	assert.Equal(t, testNow.Add(-24*time.Hour), messages[0].Timestamp)
}

func TestSharedItemsNewestFirst(t *testing.T) {
	db := newTestDB(t)

	items, err := db.SharedItems(testNow)
	require.NoError(t, err)
	require.Len(t, items, 4)
	assert.Equal(t, "img-1", items[0].ID)
	assert.Equal(t, "img-2", items[3].ID)
	assert.Equal(t, testNow.Add(-48*time.Hour), items[3].Date)
	assert.Empty(t, items[1].Preview)
}
