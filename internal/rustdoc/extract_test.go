package rustdoc

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractLeadingRun(t *testing.T) {
	src := strings.Join([]string{
		"//! First line.",
		"//!",
		"//! Second paragraph.",
		"",
		"fn main() {}",
	}, "\n")

	got := Extract(src, Options{})

	assert.Equal(t, "First line.\n\nSecond paragraph.", got)
}

func TestExtractSkipsPreludeBeforeDocRun(t *testing.T) {
	src := strings.Join([]string{
		"// Copyright notice.",
		"#![deny(missing_docs)]",
		"",
		"//! The real documentation.",
		"//! More of it.",
		"use std::io;",
		"//! Not part of the leading run.",
	}, "\n")

	got := Extract(src, Options{})

	assert.Equal(t, "The real documentation.\nMore of it.", got)
}

func TestExtractStripsAtMostOneSpace(t *testing.T) {
	src := "//!no space\n//!  two spaces\n"

	got := Extract(src, Options{})

	assert.Equal(t, "no space\n two spaces", got)
}

func TestExtractHiddenLinesDroppedInsideFence(t *testing.T) {
	src := strings.Join([]string{
		"//! Example:",
		"//!",
		"//! ```rust",
		"//! # use std::io;",
		"//! let x = 1;",
		"//! ```",
		"fn main() {}",
	}, "\n")

	got := Extract(src, Options{})

	assert.Equal(t, "Example:\n\n```rust\nlet x = 1;\n```", got)
}

func TestExtractHiddenLinesKeptWithShowHidden(t *testing.T) {
	src := strings.Join([]string{
		"//! ```",
		"//! # hidden",
		"//! visible",
		"//! ```",
	}, "\n")

	got := Extract(src, Options{ShowHidden: true})

	assert.Equal(t, "```\n# hidden\nvisible\n```", got)
}

func TestExtractHashOutsideFenceNotFiltered(t *testing.T) {
	src := "//! # Heading\n//! text\n"

	got := Extract(src, Options{})

	assert.Equal(t, "# Heading\ntext", got)
}

func TestExtractAttributeLinesInsideFenceKept(t *testing.T) {
	src := strings.Join([]string{
		"//! ```",
		"//! #[derive(Debug)]",
		"//! struct S;",
		"//! #",
		"//! ```",
	}, "\n")

	got := Extract(src, Options{})

	assert.Equal(t, "```\n#[derive(Debug)]\nstruct S;\n```", got)
}

func TestExtractFenceStateAcrossMultipleBlocks(t *testing.T) {
	src := strings.Join([]string{
		"//! ```",
		"//! # hidden one",
		"//! ```",
		"//! # Heading between fences",
		"//! ```text",
		"//! # hidden two",
		"//! ```",
	}, "\n")

	got := Extract(src, Options{})

	assert.Equal(t, "```\n```\n# Heading between fences\n```text\n```", got)
}

func TestExtractCRLFJoin(t *testing.T) {
	src := "//! one\r\n//! two\r\n"

	got := Extract(src, Options{CRLF: true})

	assert.Equal(t, "one\r\ntwo", got)
}

func TestExtractNoDocYieldsEmpty(t *testing.T) {
	assert.Empty(t, Extract("fn main() {}\n", Options{}))
	assert.Empty(t, Extract("", Options{}))
}

func TestExtractDocOnlyFile(t *testing.T) {
	got := Extract("//! only doc", Options{})

	assert.Equal(t, "only doc", got)
}
