// Package expertservice implements jury identity inside the
// identity-access context.
//
// The module owns expert provisioning (admin-issued access codes),
// credential authentication, server-issued session tokens, and the
// role gate consulted by every protected operation. Authorization is
// always resolved against the server's own expert record; a role
// asserted by the client is never trusted.
package expertservice
