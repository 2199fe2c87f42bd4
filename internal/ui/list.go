package ui

import (
	"github.com/charmbracelet/bubbles/list"
	"github.com/desertthunder/subx/internal/services"
)

var _ list.Item = subscriptionItem{}

// subscriptionItem wraps [services.Subscription] to implement [list.Item].
type subscriptionItem struct {
	sub services.Subscription
}

func (i subscriptionItem) FilterValue() string { return i.sub.Title }
func (i subscriptionItem) Title() string       { return i.sub.Title }
func (i subscriptionItem) Description() string { return i.sub.Channel.ChannelID }
