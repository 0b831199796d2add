// Package xivapi resolves item identifiers to display names through the XIVAPI v2
// item sheet.
//
// A lookup has exactly three outcomes: a name, ErrNotFound (the sheet answered with
// code 404) or an error. Callers treat ErrNotFound as a permanent answer and every
// other error as a transient failure of that single call.
package xivapi
