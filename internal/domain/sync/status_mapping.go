package sync

// StatusMapping translates one warehouse order status into a local order
// status handle.
type StatusMapping struct {
	PickHero string
	ChangeTo string
}

// StatusMappingTable is an ordered list of mappings. Order matters: when
// two entries name the same warehouse status, the first one wins.
type StatusMappingTable []StatusMapping

// Resolve returns the local status handle for the given warehouse status.
// The second return value is false when no entry matches.
func (t StatusMappingTable) Resolve(pickheroStatus string) (string, bool) {
	for _, m := range t {
		if m.PickHero == pickheroStatus {
			return m.ChangeTo, true
		}
	}
	return "", false
}
