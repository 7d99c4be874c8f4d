package spectral

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	mValidated = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "grasch_validate_total",
		Help: "Number of validated instances by conformance mode and outcome.",
	}, []string{"mode", "outcome"})
)

func outcome(err error) string {
	switch err.(type) {
	case nil:
		return "valid"
	case *MissingMandatoryAttributeError:
		return "missing"
	case *UnexpectedAttributeError:
		return "unexpected"
	case *AmbiguousConformanceError:
		return "ambiguous"
	case *AmbiguousKeyMatchError:
		return "ambiguous_key"
	case *AbstractTypeDirectInstantiationError:
		return "abstract"
	}
	if err == ErrNoConformingType {
		return "no_match"
	}
	return "error"
}
