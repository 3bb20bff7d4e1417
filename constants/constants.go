package constants

// TicksPerBeat is the SMF metric-ticks resolution for session files.
const TicksPerBeat = 480

const DefaultTempoBPM = 120

const DefaultVelocity = 90

const DefaultRepetitions = 10

// DefaultMaxDuration is the session duration budget in seconds.
const DefaultMaxDuration = 600

// MeasureEpsilon is the tolerance when comparing a measure's summed
// beats against the declared time-signature numerator.
const MeasureEpsilon = 0.01

// DefaultUnitLength is the beat value of an undecorated note atom.
const DefaultUnitLength = 1.0

const DefaultBeatsPerMeasure = 4

// IntraIntervalGap is the short breath between the two notes of an
// interval exercise, in seconds.
const IntraIntervalGap = 0.1
