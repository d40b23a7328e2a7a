// Package gemini adapts prompt documents to the Gemini CLI layout.
//
// Slash commands become TOML files under ~/.gemini/commands with the
// canonical $ARGUMENTS placeholder translated to Gemini's {{args}}
// syntax. Agents have no native home; they are maintained as marked
// sections of the GEMINI.md context file. Skills and guides are not
// supported.
package gemini
