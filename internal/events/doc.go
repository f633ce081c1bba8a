// PelisMatch - Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pelismatch

// Package events carries activity events over an in-process Watermill
// GoChannel.
//
// Topics:
//
//	recommendation.served    favorites and similar-movie responses
//	conversation.completed   chatbot conversations that ended
//
// Publisher is used by request paths; a publish failure is logged and never
// fails the request. Consumer is a suture service that logs and counts every
// event it receives.
package events
