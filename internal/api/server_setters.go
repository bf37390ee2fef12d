package api

// SetFormatDecorator points /api/format and the health probes at the
// capability decorated under name. The default is "prettier".
func (s *Server) SetFormatDecorator(name string) {
	if s.handlers != nil {
		s.handlers.SetFormatDecorator(name)
	}
	if s.health != nil {
		s.health.SetFormatDecorator(name)
	}
}

// SetMaxBodyBytes limits the request body accepted by /api/format.
func (s *Server) SetMaxBodyBytes(n int64) {
	if s.handlers != nil && n > 0 {
		s.handlers.SetMaxBodyBytes(n)
	}
}
