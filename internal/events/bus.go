// PelisMatch - Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pelismatch

package events

import (
	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"

	"github.com/tomtom215/pelismatch/internal/config"
	"github.com/tomtom215/pelismatch/internal/logging"
)

// DefaultBuffer is the per-subscriber channel buffer when none is configured.
const DefaultBuffer = 64

// NewBus creates the in-process pub/sub. Messages published while no
// consumer is subscribed are dropped.
func NewBus(cfg *config.EventsConfig) *gochannel.GoChannel {
	buffer := cfg.Buffer
	if buffer <= 0 {
		buffer = DefaultBuffer
	}
	return gochannel.NewGoChannel(
		gochannel.Config{OutputChannelBuffer: buffer},
		watermill.NewSlogLogger(logging.NewSlogLogger("events")),
	)
}
