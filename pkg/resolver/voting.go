package resolver

// ShapeCandidate counts the trips of one route that run on one shape.
// FirstSeen is the position in the trips table of the first such trip and
// breaks ties between equally referenced shapes.
type ShapeCandidate struct {
	ShapeID    string
	References int
	FirstSeen  int
}

// RouteShapeCandidates holds every shape referenced by a route's trips.
type RouteShapeCandidates struct {
	RouteID    string
	SampleTrip string
	Candidates map[string]*ShapeCandidate
}

// VotingIndex is the route_id -> shape_id -> reference count mapping built
// from a single scan of the trips table.
type VotingIndex struct {
	Routes map[string]*RouteShapeCandidates
}

// BuildVotingIndex scans trips in file order. Every trip with a shape adds
// one reference to its (route, shape) pair.
//
// The first trip of each route is kept as the route's sample trip and its
// time span is later reported as the route's duration. This is one sampled
// trip, not an average over the route.
func BuildVotingIndex(trips []Trip) *VotingIndex {
	index := &VotingIndex{
		Routes: map[string]*RouteShapeCandidates{},
	}

	for position, trip := range trips {
		route, exists := index.Routes[trip.RouteID]
		if !exists {
			route = &RouteShapeCandidates{
				RouteID:    trip.RouteID,
				SampleTrip: trip.ID,
				Candidates: map[string]*ShapeCandidate{},
			}
			index.Routes[trip.RouteID] = route
		}

		if trip.ShapeID == "" {
			continue
		}

		candidate, exists := route.Candidates[trip.ShapeID]
		if !exists {
			candidate = &ShapeCandidate{ShapeID: trip.ShapeID, FirstSeen: position}
			route.Candidates[trip.ShapeID] = candidate
		}
		candidate.References++
	}

	return index
}

// SelectShape picks the most referenced shape of a route. Ties go to the
// shape whose first trip came earliest in the trips table.
func SelectShape(route *RouteShapeCandidates) (ShapeCandidate, bool) {
	var chosen *ShapeCandidate

	for _, candidate := range route.Candidates {
		if chosen == nil ||
			candidate.References > chosen.References ||
			(candidate.References == chosen.References && candidate.FirstSeen < chosen.FirstSeen) {
			chosen = candidate
		}
	}

	if chosen == nil {
		return ShapeCandidate{}, false
	}

	return *chosen, true
}

// Selection returns the chosen shape and the sample trip of a route.
func (v *VotingIndex) Selection(routeID string) (ShapeCandidate, string, bool) {
	route, exists := v.Routes[routeID]
	if !exists {
		return ShapeCandidate{}, "", false
	}

	candidate, ok := SelectShape(route)
	return candidate, route.SampleTrip, ok
}
