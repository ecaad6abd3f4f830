// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"github.com/charmbracelet/lipgloss"
)

// Theme defines the color palette for the room directory. All colors
// use lipgloss ANSI 256-color codes for broad terminal compatibility.
//
// The fields cover universal chrome (text, selection, borders) and the
// room semantics the directory shows: access (public or protected),
// activity, and notices.
type Theme struct {
	// Text colors.
	NormalText lipgloss.Color
	FaintText  lipgloss.Color

	// Selected row or card.
	SelectedBackground lipgloss.Color
	SelectedForeground lipgloss.Color

	// Room access.
	PublicRoom    lipgloss.Color
	ProtectedRoom lipgloss.Color
	InactiveRoom  lipgloss.Color

	// UI chrome.
	HeaderForeground lipgloss.Color
	BorderColor      lipgloss.Color
	HelpText         lipgloss.Color
	AccentColor      lipgloss.Color // Spinner, focused input, page indicator.

	// Notices shown in the status line.
	NoticeInfo    lipgloss.Color
	NoticeSuccess lipgloss.Color
	NoticeError   lipgloss.Color

	// Background tint for rooms that appeared since the previous refresh.
	HotAccent lipgloss.Color

	// Search match highlighting.
	SearchHighlightBackground lipgloss.Color

	// Modal forms.
	ModalForeground lipgloss.Color
	ModalBackground lipgloss.Color
}

// DefaultTheme is the built-in dark-terminal color scheme.
var DefaultTheme = Theme{
	NormalText: lipgloss.Color("252"),
	FaintText:  lipgloss.Color("245"),

	SelectedBackground: lipgloss.Color("236"),
	SelectedForeground: lipgloss.Color("255"),

	PublicRoom:    lipgloss.Color("114"), // green
	ProtectedRoom: lipgloss.Color("220"), // amber
	InactiveRoom:  lipgloss.Color("240"), // dim gray

	HeaderForeground: lipgloss.Color("255"),
	BorderColor:      lipgloss.Color("240"),
	HelpText:         lipgloss.Color("241"),
	AccentColor:      lipgloss.Color("75"), // blue

	NoticeInfo:    lipgloss.Color("75"),
	NoticeSuccess: lipgloss.Color("114"),
	NoticeError:   lipgloss.Color("196"),

	HotAccent: lipgloss.Color("58"), // dark amber background tint

	SearchHighlightBackground: lipgloss.Color("100"),

	ModalForeground: lipgloss.Color("252"),
	ModalBackground: lipgloss.Color("237"),
}
