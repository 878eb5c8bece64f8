package models

import "time"

type ChannelType string

const (
	ChannelPublic ChannelType = "channel"
	ChannelDirect ChannelType = "direct"
	ChannelGroup  ChannelType = "group"
)

// Label is the subtitle shown under the channel name in the header.
func (t ChannelType) Label() string {
	switch t {
	case ChannelDirect:
		return "Direct Message"
	case ChannelGroup:
		return "Group Message"
	default:
		return "Channel"
	}
}

type Channel struct {
	ID     string
	Name   string
	Type   ChannelType
	Unread int
}

type Sender struct {
	ID     string
	Name   string
	Avatar string
}

type Reaction struct {
	Emoji string
	Count int
	Users []string
}

type AttachmentType string

const (
	AttachmentImage AttachmentType = "image"
	AttachmentFile  AttachmentType = "file"
	AttachmentLink  AttachmentType = "link"
)

type Attachment struct {
	Type    AttachmentType
	URL     string
	Name    string
	Preview string
}

type Message struct {
	ID           string
	Content      string
	Sender       Sender
	Timestamp    time.Time
	Reactions    []Reaction
	Attachments  []Attachment
	IsTyping     bool
	IsAdmin      bool
	SelfDestruct bool
}

type SharedItem struct {
	ID      string
	Type    AttachmentType
	Name    string
	URL     string
	Preview string
	AddedBy string
	Date    time.Time
}

type MemberStatus string

const (
	StatusOnline  MemberStatus = "online"
	StatusOffline MemberStatus = "offline"
	StatusAway    MemberStatus = "away"
	StatusDND     MemberStatus = "dnd"
)

type MemberRole string

const (
	RoleAdmin  MemberRole = "admin"
	RoleMember MemberRole = "member"
	RoleGuest  MemberRole = "guest"
)

type Member struct {
	ID      string       `yaml:"id"`
	Name    string       `yaml:"name"`
	Status  MemberStatus `yaml:"status"`
	Role    MemberRole   `yaml:"role"`
	Aliases []string     `yaml:"aliases,omitempty"`
}

type Focus int

const (
	FocusSidebar Focus = iota
	FocusMessages
	FocusComposer
)
