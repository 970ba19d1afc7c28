package verify

// Validate validates a verification request
func (r *Request) Validate() error {
	return r.Target.Validate()
}
