package resolver

import (
	"github.com/rs/zerolog/log"
	"github.com/sourcegraph/conc/pool"
	"github.com/travigo/gtfs2geojson/pkg/tabular"
)

// Tables are the materialised inputs of a route resolution.
type Tables struct {
	StopTimes *tabular.Table
	Shapes    *tabular.Table
	Trips     *tabular.Table
	Routes    *tabular.Table
}

// Resolve runs the whole pipeline. The three table scans share nothing and
// run concurrently; the feature join starts once all of them are finished.
func Resolve(tables Tables, reporter Reporter) ([]RouteFeature, error) {
	var spans map[string]*TripTimeSpan
	var shapes *ShapeSet
	var index *VotingIndex

	p := pool.New().WithErrors()

	p.Go(func() error {
		var err error
		spans, err = ResolveTripTimes(tables.StopTimes, reporter)
		if err == nil {
			log.Debug().Int("length", len(spans)).Msg("Resolved trip times")
		}
		return err
	})
	p.Go(func() error {
		var err error
		shapes, err = AssembleShapes(tables.Shapes, reporter)
		if err == nil {
			log.Debug().Int("length", len(shapes.Shapes)).Bool("distances", shapes.HasDistance).Msg("Assembled shapes")
		}
		return err
	})
	p.Go(func() error {
		trips, err := LoadTrips(tables.Trips)
		if err != nil {
			return err
		}
		index = BuildVotingIndex(trips)
		log.Debug().Int("trips", len(trips)).Int("routes", len(index.Routes)).Msg("Built route shape votes")
		return nil
	})

	if err := p.Wait(); err != nil {
		return nil, err
	}

	return BuildRouteFeatures(tables.Routes, index, shapes, spans, reporter)
}
