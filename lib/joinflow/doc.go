// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package joinflow drives joining a chat room from the directory.
//
// A join starts when the user picks a room or fills in the direct-join
// form. The [Controller] collects a username (rejecting blank ones
// without a network call), asks for a password if the room is
// protected, and then submits the request. Submission is expressed as
// an [*Attempt] the host runs off its event loop; the [Result] comes
// back through Controller.Complete.
//
// A pending password prompt is an explicit [Challenge] value. There is
// at most one: picking another room replaces it, so a half-typed
// password never carries over to a different room. A wrong password
// returns to the same challenge with the username intact; every other
// refusal, and any transport failure, returns to idle so the user
// picks the room again.
//
// On acceptance the controller reaches PhaseDone and exposes a
// [Handoff], the chat page target "/chat/{roomId}?username={name}".
// Opening that page is the host's business.
package joinflow
