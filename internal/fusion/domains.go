package fusion

// #region domains

// Domain tags one of the eight personalization signal sources. The set is
// closed; it is never extended at runtime.
type Domain string

const (
	DomainTarot              Domain = "tarot"
	DomainPsychology         Domain = "psychology"
	DomainNeuroscience       Domain = "neuroscience"
	DomainLinguistics        Domain = "linguistics"
	DomainSanskrit           Domain = "sanskrit"
	DomainUserHistory        Domain = "user_history"
	DomainCrossSession       Domain = "cross_session"
	DomainJournalCorrelation Domain = "journal_correlation"
)

// DomainOrder fixes iteration and tie-break order everywhere. Dominant-domain
// ties resolve to the earliest entry.
var DomainOrder = [8]Domain{
	DomainTarot,
	DomainPsychology,
	DomainNeuroscience,
	DomainLinguistics,
	DomainSanskrit,
	DomainUserHistory,
	DomainCrossSession,
	DomainJournalCorrelation,
}

// #endregion domains

// #region basis

// VectorDim is the length of the fused output vector.
const VectorDim = 6

// domainBasis maps each domain onto the 6-dim output space. The fused vector
// is the weight-convex combination of these rows, so every coordinate stays
// in [0, 1]. Axes: symbolism, cognition, emotion, language, temporality,
// reflection.
var domainBasis = map[Domain][VectorDim]float64{
	DomainTarot:              {0.95, 0.20, 0.60, 0.30, 0.25, 0.40},
	DomainPsychology:         {0.25, 0.90, 0.70, 0.35, 0.30, 0.50},
	DomainNeuroscience:       {0.10, 0.85, 0.45, 0.25, 0.40, 0.20},
	DomainLinguistics:        {0.30, 0.55, 0.25, 0.95, 0.15, 0.30},
	DomainSanskrit:           {0.85, 0.30, 0.40, 0.70, 0.20, 0.45},
	DomainUserHistory:        {0.35, 0.40, 0.50, 0.20, 0.90, 0.35},
	DomainCrossSession:       {0.40, 0.50, 0.45, 0.25, 0.85, 0.60},
	DomainJournalCorrelation: {0.45, 0.45, 0.75, 0.40, 0.55, 0.95},
}

// positionAxes groups the domains onto the three semantic-position
// coordinates: intuition, cognition, continuity. The groups partition the
// domain set, so each coordinate is a sub-sum of the normalized weights.
var positionAxes = [3][]Domain{
	{DomainTarot, DomainSanskrit, DomainJournalCorrelation},
	{DomainPsychology, DomainNeuroscience, DomainLinguistics},
	{DomainUserHistory, DomainCrossSession},
}

// #endregion basis

// #region traits

// TraitKeys are the five recognized personality-trait inputs. Values outside
// this set are ignored.
var TraitKeys = [5]string{
	"openness",
	"conscientiousness",
	"extraversion",
	"agreeableness",
	"neuroticism",
}

// #endregion traits
