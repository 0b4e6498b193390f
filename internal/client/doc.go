// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package client implements the command-line directory client.
//
// An [App] turns one command with its operands into a call on an
// adapter.DirectoryClient and prints the resulting view as indented JSON.
package client
