package transport

const (
	MsgBadRequest   = "ERROR_400 - Bad Request."
	MsgUnauthorized = "ERROR_401 - Unauthorized"
	MsgForbidden    = "ERROR_403 - Forbidden"
	MsgNotFound     = "ERROR_404 - Not Found."

	// MsgRouteNotFound is returned for paths and methods no route matches.
	MsgRouteNotFound = "Not Found."

	MsgSuccess            = "Success."
	MsgInvalidCredentials = "Invalid username or password."
	MsgUserExists         = "Specified username already exists in the system. Change username or log in."
)
