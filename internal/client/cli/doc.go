// Package cli provides the interactive storefront command-line client.
//
// It wires configuration, the local database, the backend client and the
// session manager, then runs a REPL. The session is restored from disk
// before the first prompt; the prompt reflects the session state.
//
// Commands: register, login, logout, whoami, addproduct, editproduct,
// statuses, help, exit.
package cli
