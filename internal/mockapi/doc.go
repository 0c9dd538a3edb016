// Package mockapi is an in-memory implementation of the failures API used for
// local development and end-to-end tests of the client.
//
// Routes:
//
//	POST   /user/login            {username,password} -> {token,user}
//	GET    /user                  list users, query params filter by field
//	GET    /user/{id}
//	POST   /user
//	PUT    /user/{id}
//	DELETE /user/{id}
//	GET    /falhas
//	POST   /falhas                {tipo,descricao} -> failure
//	PUT    /falhas/{id}/status    {status}
//
// Every route except login requires "Authorization: Bearer <jwt>".
package mockapi
