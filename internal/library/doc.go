// Package library implements the account-scoped music library.
//
// [Accounts] owns the account lifecycle (create, login, delete, recovery) and hands out a [User]
// on success. A [User] is the logged-in aggregate: its collection, playlists and favorites live in
// memory and every mutation is written back through the [repositories.AccountStore] before the
// method returns.
//
// # Correction results
//
// Some failures ask the caller for different input rather than aborting:
//   - [shared.ErrInvalidEmail] and [shared.ErrEmailTaken] from [Accounts.CreateAccount]
//   - [shared.ErrInvalidCredentials] from [Accounts.Login]
//
// [NeedsCorrection] reports these. The core never loops or prompts; the session controller decides
// whether to ask again.
package library
