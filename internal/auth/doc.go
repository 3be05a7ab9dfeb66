// Package auth resolves API tokens to learner accounts.
//
// Every request outside /health, /ping and /media/ must carry one of
//
//	Authorization: Token <token>
//	Authorization: Bearer <token>
//
// Tokens are issued by the create-user command. Only their SHA-256 hash is
// stored, so a lost token cannot be recovered, only replaced.
//
// Extract the learner in handlers:
//
//	user := auth.GetUser(c)
package auth
