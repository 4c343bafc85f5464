// Package api handles incoming HTTP requests, request validation and
// response formatting for the card routes. It adapts HTTP concerns to
// service.CardService calls and maps service errors to status codes.
package api
