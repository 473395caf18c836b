package server

// Server combines entity-specific HTTP servers under one route registrar.
type Server struct {
	DealsServer
	ChatServer
}

func NewServer(
	dealsServer DealsServer,
	chatServer ChatServer,
) Server {
	return Server{
		DealsServer: dealsServer,
		ChatServer:  chatServer,
	}
}
