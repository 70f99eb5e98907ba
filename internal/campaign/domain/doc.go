// Package domain defines the tracked entities for game-session logging:
// games, players, campaigns, custom fields, campaign keys, and entries with
// per-player results. Constructors validate and normalize input; records are
// plain data once created.
package domain
