// Package gp decodes and encodes Guitar Pro tablature files (v3.00, v4.0x,
// v5.00, v5.10) into a fully-structured score model. The package exposes a
// pure data graph (Song and everything it owns) and two entry points, Decode
// and Encode; it does no file I/O and no rendering.
package gp

import "github.com/google/uuid"

// DurationQuarterTime is the time unit of one undotted quarter note.
const DurationQuarterTime = 960

// Version identifies the on-wire dialect of a Guitar Pro file.
type Version struct {
	Major     int
	Minor     int
	Patch     int
	Raw       string // the verbatim banner string
	Clipboard bool   // banner began with "CLIPBOARD"
}

// Clipboard is the optional block that follows a "CLIPBOARD" banner.
type Clipboard struct {
	StartMeasure int32
	StopMeasure  int32
	StartTrack   int32
	StopTrack    int32
	StartBeat    int32 // v5 only
	StopBeat     int32 // v5 only
	SubBarCopy   bool  // v5 only
}

// TripletFeel selects the global swing interpretation of eighth notes.
type TripletFeel int

const (
	TripletFeelNone TripletFeel = iota
	TripletFeelEighth
)

// Song owns every decoded entity. It is built once by Decode and is pure
// data afterward; Encode only reads it.
type Song struct {
	ID uuid.UUID // correlation handle, not part of the wire format

	Version Version
	Clip    *Clipboard

	Title        string
	Subtitle     string
	Artist       string
	Album        string
	Words        string
	Copyright    string
	Tab          string
	Instructions string
	Notices      []string

	TripletFeel TripletFeel
	Tempo       int32
	TempoName   string
	HideTempo   bool
	Key         KeySignature

	Channels       [64]MidiChannel
	MeasureHeaders []*MeasureHeader
	Tracks         []*Track

	Directions  Directions
	PageSetup   PageSetup
	Lyrics      Lyrics
	MasterEffect RseMasterEffect
}

// MidiChannel is one of the 64 fixed MIDI channel slots in a Song.
type MidiChannel struct {
	Channel       int
	EffectChannel int
	Instrument    int32
	Volume        int8
	Balance       int8
	Chorus        int8
	Reverb        int8
	Phaser        int8
	Tremolo       int8
	Bank          uint8
}

// IsPercussion reports whether this channel plays the percussion kit.
func (c MidiChannel) IsPercussion() bool { return c.Channel%16 == 9 }

// KeySignature is a circle-of-fifths key: -7..7 flats/sharps, major or minor.
type KeySignature struct {
	Key     int8
	IsMinor bool
}

// TimeSignature is numerator/denominator plus, in v5, a four-entry beaming
// hint.
type TimeSignature struct {
	Numerator   int8
	Denominator Duration
	Beams       [4]uint8
}

// Marker labels a measure with a title and a display color.
type Marker struct {
	Title string
	Color uint32
}

// DirectionSign names a jump target (Coda, Segno, ...) attached to a header.
type DirectionSign int

const (
	DirectionNone DirectionSign = iota
	DirectionCoda
	DirectionDoubleCoda
	DirectionSegno
	DirectionSegnoSegno
	DirectionFine
	DirectionDaCapo
	DirectionDaCapoAlCoda
	DirectionDaCapoAlDoubleCoda
	DirectionDaCapoAlFine
	DirectionDaSegno
	DirectionDaSegnoAlCoda
	DirectionDaSegnoAlDoubleCoda
	DirectionDaSegnoAlFine
	DirectionDaSegnoSegno
	DirectionDaSegnoSegnoAlCoda
	DirectionDaSegnoSegnoAlDoubleCoda
	DirectionDaSegnoSegnoAlFine
	DirectionDaCoda
	DirectionDaDoubleCoda
)

// Directions is the v5 table of 19 jump-target measure numbers (1-based, 0
// meaning absent), read in the fixed order: Coda, DoubleCoda, Segno,
// SegnoSegno, Fine, then the 14 "from" signs.
type Directions [19]int16

// MeasureHeader carries the metadata shared by every track's measure at a
// given position. Start is derived, never serialized.
type MeasureHeader struct {
	Number int

	Start int64 // derived: accumulated numerator * denominator.Time()

	TimeSignature TimeSignature
	Tempo         int32

	Marker *Marker

	RepeatOpen        bool
	RepeatClose       int8 // -1 = no close
	RepeatAlternative uint8

	TripletFeel TripletFeel
	Direction   DirectionSign

	KeySignature KeySignature
	DoubleBar    bool
}

// Duration is a rhythmic value: a power-of-two note value, optional dotting,
// and an optional tuplet ratio.
type Duration struct {
	Value        int8 // one of 1,2,4,8,16,32,64,128
	Dotted       bool
	DoubleDotted bool
	Enters       int8
	Times        int8
}

// NewDuration returns an undotted, non-tuplet Duration of the given value.
func NewDuration(value int8) Duration {
	return Duration{Value: value, Enters: 1, Times: 1}
}

// Time computes the duration in DurationQuarterTime units: floor(3840/value),
// plus half when dotted, then scaled by Enters/Times with truncation.
func (d Duration) Time() int64 {
	t := int64(DurationQuarterTime*4) / int64(d.Value)
	if d.Dotted {
		t += t / 2
	} else if d.DoubleDotted {
		t += (t / 4) * 3
	}
	enters, times := d.Enters, d.Times
	if enters == 0 {
		enters = 1
	}
	if times == 0 {
		times = 1
	}
	return t * int64(enters) / int64(times)
}

// SupportedTuplets is the closed set of (enters, times) pairs a Guitar Pro
// file may encode.
var SupportedTuplets = [10][2]int8{
	{1, 1}, {3, 2}, {5, 4}, {6, 4}, {7, 4},
	{9, 8}, {10, 8}, {11, 8}, {12, 8}, {13, 8},
}

// Track is one instrument line: string tuning, channel binding, display
// settings, and its own measures (one per Song.MeasureHeaders entry).
type Track struct {
	Number int
	Name   string

	Strings []TrackString

	ChannelIndex       int
	EffectChannelIndex int

	Color uint32
	Port  int32

	FretCount int32
	Offset    int32

	Percussion  bool
	TwelveString bool
	Banjo        bool
	Solo         bool
	Mute         bool
	Visible      bool

	Rse *TrackRse

	Measures []*Measure
}

// TrackString pairs a 1-based string index with its open-string MIDI pitch.
type TrackString struct {
	Index int
	Pitch int8
}

// Measure is one track's content for one MeasureHeader.
type Measure struct {
	TrackIndex  int
	HeaderIndex int
	Voices      []*Voice
	Clef        Clef
	LineBreak   LineBreak
}

// Clef selects the staff clef a measure is notated in.
type Clef int

const (
	ClefTreble Clef = iota
	ClefBass
	ClefTenor
	ClefAlto
)

// LineBreak controls whether a measure starts a new system.
type LineBreak int

const (
	LineBreakNone LineBreak = iota
	LineBreakBreak
	LineBreakInherit
)

// Voice is one polyphonic line within a measure (up to two in v5).
type Voice struct {
	Beats     []*Beat
	Direction VoiceDirection
}

// VoiceDirection is an up/down playback hint for a voice.
type VoiceDirection int

const (
	VoiceDirectionNone VoiceDirection = iota
	VoiceDirectionUp
	VoiceDirectionDown
)

// BeatStatus is Empty (no content), Normal, or Rest.
type BeatStatus int

const (
	BeatStatusEmpty BeatStatus = iota
	BeatStatusNormal
	BeatStatusRest
)

// Beat is a rhythmic event: a duration, status, optional effects/text, and
// the notes sounding at Start.
type Beat struct {
	Start    int64
	Duration Duration
	Status   BeatStatus
	Text     string
	Effects  BeatEffects
	Octave   Octave
	Display  BeatDisplay
	Notes    []*Note
}

// Octave is an ottava display marking for an entire beat.
type Octave int

const (
	OctaveNone Octave = iota
	OctaveOttava
	OctaveOttavaBassa
	OctaveQuindicesima
	OctaveQuindicesimaBassa
)

// BeatDisplay carries v5 secondary-flag beaming/tuplet-bracket hints.
type BeatDisplay struct {
	BreakBeam         bool
	ForceBeam         bool
	BeamDirection     VoiceDirection
	TupletBracketOpen bool
	TupletBracketClose bool
	BreakSecondary    bool
	BreakSecondaryCount uint8
	BreakSecondaryTuplet bool
	ForceBracket      bool
}

// SlapCode is the tremolo-bar-or-slap selector on a v3/v4 beat.
type SlapCode int

const (
	SlapNone SlapCode = iota
	SlapTapping
	SlapSlapping
	SlapPopping
)

// BeatStroke is a down/up strum with per-direction speed.
type BeatStroke struct {
	Direction VoiceDirection
	Value     Duration
}

// BeatEffects bundles the v3/v4/v5 beat-level effect fields.
type BeatEffects struct {
	Vibrato         bool
	WideVibrato     bool
	NaturalHarmonic bool
	ArtificialHarmonic bool
	FadeIn          bool
	Slap            SlapCode
	TremoloBar      *BendEffect
	Stroke          *BeatStroke
	HasRasgueado    bool
	PickStroke      VoiceDirection
	MixTableChange  *MixTableChange
	Chord           *Chord
}

// NoteKind is the note's presence/role within a string.
type NoteKind int

const (
	NoteKindRest NoteKind = iota
	NoteKindNormal
	NoteKindTie
	NoteKindDead
)

// Note is one fretted event on one string of a beat.
type Note struct {
	Value           int8 // fret, clamped [0,99]
	Velocity        int8 // unpacked, see primitives.go
	String          int  // 1-based
	Kind            NoteKind
	Effect          NoteEffect
	DurationPercent float64
	SwapAccidentals bool
	HeavyAccent     bool // not represented on the wire; the bit it would use also gates the kind byte
	Ghost           bool
	Accent          bool
	Fingering       *Fingering
}

// Fingering is the left/right hand fingering hint on a note.
type Fingering struct {
	Left  int8
	Right int8
}

// BendType selects the shape of a bend effect.
type BendType int

const (
	BendNone BendType = iota
	BendBend
	BendBendRelease
	BendBendReleaseBend
	BendPrebend
	BendPrebendRelease
	BendDip
	BendDive
	BendReleaseUp
	BendInvertedDip
	BendReturn
	BendReleaseDown
)

// BendPoint is one control point on a bend curve, normalized to a 12x12
// grid.
type BendPoint struct {
	Position int8
	Value    int8
	Vibrato  bool
}

// BendEffect is a pitch-curve effect.
type BendEffect struct {
	Kind           BendType
	Value          int16
	Points         []BendPoint
	SemitoneLength int8
}

const (
	BendMaxPosition = 12
	BendMaxValue    = 12
)

// GraceTransition selects how a grace note connects to its target note.
type GraceTransition int

const (
	GraceTransitionNone GraceTransition = iota
	GraceTransitionSlide
	GraceTransitionBend
	GraceTransitionHammer
)

// GraceEffect is an ornamental note played just before the beat.
type GraceEffect struct {
	Fret       int8 // -1 = dead
	Velocity   int8
	Transition GraceTransition
	Duration   int8 // note value, e.g. 32 for a 32nd
	IsDead     bool
}

// HarmonicType selects the harmonic production technique.
type HarmonicType int

const (
	HarmonicNone HarmonicType = iota
	HarmonicNatural
	HarmonicArtificial
	HarmonicTapped
	HarmonicPinch
	HarmonicSemi
)

// HarmonicEffect models the five harmonic sub-variants.
type HarmonicEffect struct {
	Kind   HarmonicType
	Pitch  *PitchClass
	Octave int8
	Fret   int8 // Tapped: fret = value+12
}

// SlideType enumerates the seven v4/v5 slide variants.
type SlideType int

const (
	SlideNone SlideType = iota
	SlideShiftSlideTo
	SlideLegatoSlideTo
	SlideOutDownwards
	SlideOutUpwards
	SlideIntoFromBelow
	SlideIntoFromAbove
)

// TremoloPickingEffect is a rapid-repeat effect with a duration code.
type TremoloPickingEffect struct {
	Duration int8
}

// TrillEffect plays a note alternating with a fixed fret at a given speed.
type TrillEffect struct {
	Fret     int8
	Duration int8
}

// NoteEffect bundles every per-note effect.
type NoteEffect struct {
	Bend            *BendEffect
	HammerPullOff   bool
	Slide           []SlideType
	LetRing         bool
	Grace           *GraceEffect
	Staccato        bool
	PalmMute        bool
	TremoloPicking  *TremoloPickingEffect
	Harmonic        *HarmonicEffect
	Trill           *TrillEffect
	Vibrato         bool
}

// PitchClass is a chromatic pitch 0..11 plus enharmonic spelling.
type PitchClass struct {
	Just       int8
	Accidental int8 // -1, 0, 1
}

// Value returns Just mod 12.
func (p PitchClass) Value() int8 {
	v := p.Just % 12
	if v < 0 {
		v += 12
	}
	return v
}

// Sharp reports whether this pitch is conventionally spelled sharp.
func (p PitchClass) Sharp() bool { return p.Accidental >= 0 }

// Name returns the conventional note name for this pitch class.
func (p PitchClass) Name() string {
	if p.Sharp() {
		return SharpNotes[p.Value()]
	}
	return FlatNotes[p.Value()]
}

// SharpNotes and FlatNotes name each of the 12 chromatic pitch classes.
var SharpNotes = [12]string{"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B"}
var FlatNotes = [12]string{"C", "Db", "D", "Eb", "E", "F", "Gb", "G", "Ab", "A", "Bb", "B"}

// ChordType enumerates the 15 wire chord-quality codes.
type ChordType int

const (
	ChordMajor ChordType = iota
	ChordSeventh
	ChordMajorSeventh
	ChordSixth
	ChordMinor
	ChordMinorSeventh
	ChordMinorMajor
	ChordMinorSixth
	ChordMinorSeventhFlatFive
	ChordMinorSeventhSharpFive
	ChordDiminished
	ChordAugmented
	ChordPower
	ChordSuspended2nd
	ChordSuspended4th
)

// ChordExtension is the 0..3 extension code (none/9th/11th/13th).
type ChordExtension int

const (
	ExtensionNone ChordExtension = iota
	Extension9th
	Extension11th
	Extension13th
)

// ChordAlteration is the tonality of an altered fifth/ninth/eleventh.
type ChordAlteration int

const (
	AlterationPerfect ChordAlteration = iota
	AlterationDiminished
	AlterationAugmented
)

// Barre is a capo-style bar across the fretboard within a chord diagram.
type Barre struct {
	Fret  int32
	Start int32
	End   int32
}

// Chord is a fingering diagram attached to a beat.
type Chord struct {
	NewFormat bool
	Length    int
	Strings   []int8 // -1 = untouched

	Name  string
	Sharp bool

	Root *PitchClass
	Type ChordType

	Extension ChordExtension
	Bass      *PitchClass
	Tonality  ChordAlteration
	Add       bool

	Fifth     ChordAlteration
	Ninth     ChordAlteration
	Eleventh  ChordAlteration

	FirstFret int32
	Barres    []Barre

	Omissions [7]bool
	Fingerings []Fingering
}

// MixTableChange is a beat-local change to instrument/volume/balance/
// effects/tempo, with per-field "apply to all tracks" propagation.
type MixTableChange struct {
	Instrument *int8

	Rse *RseInstrument

	Volume  *int8
	Balance *int8
	Chorus  *int8
	Reverb  *int8
	Phaser  *int8
	Tremolo *int8

	TempoName string
	Tempo     *int32

	VolumeDuration  int8
	BalanceDuration int8
	ChorusDuration  int8
	ReverbDuration  int8
	PhaserDuration  int8
	TremoloDuration int8
	TempoDuration   int8
	HideTempo       bool

	AllTracksVolume  bool
	AllTracksBalance bool
	AllTracksChorus  bool
	AllTracksReverb  bool
	AllTracksPhaser  bool
	AllTracksTremolo bool

	UseRse   bool
	ShowWah  bool
	Wah      *int8

	RseInstrumentEffect *RseInstrumentEffect
}

// IsJustWah reports whether the only populated field is the wah effect, the
// shape exercised by the v5 cross-dialect mix-table scenario.
func (m *MixTableChange) IsJustWah() bool {
	if m == nil {
		return false
	}
	return m.Wah != nil &&
		m.Instrument == nil && m.Volume == nil && m.Balance == nil &&
		m.Chorus == nil && m.Reverb == nil && m.Phaser == nil &&
		m.Tremolo == nil && m.Tempo == nil
}

// RseInstrument is the v5 instrument block inside a mix-table change.
type RseInstrument struct {
	Instrument   int32
	Unknown      int32
	SoundBank    int32
	EffectNumber int32
}

// RseInstrumentEffect names a v5.10 RSE effect by category.
type RseInstrumentEffect struct {
	Name     string
	Category string
}

// RseEqualizer is the RSE master or per-track equalizer knob set: the
// master effect carries 10 bands plus gain, a track's own equalizer
// carries 3 bands plus gain (empty, [], for v5.00 where it is absent).
type RseEqualizer struct {
	Knobs []float64 // -value/10.0
	Gain  float64
}

// RseMasterEffect is the song-wide v5.10 RSE master effect block.
type RseMasterEffect struct {
	Volume   int32
	Equalizer RseEqualizer
}

// TrackRse is the v5 trailing per-track RSE block: a humanize byte, the
// RSE instrument fields, and — v5.10 only — a per-track equalizer and
// instrument effect name/category.
type TrackRse struct {
	Humanize uint8

	Instrument   int32
	Unknown1     int32
	SoundBank    int32
	EffectNumber int32

	EffectName     string
	EffectCategory string

	Equalizer RseEqualizer
}

// PageSetup is the v5 page-layout block: page size, margins, and the
// default header/footer text template with its placeholder substitutions.
type PageSetup struct {
	PageWidth, PageHeight           int32
	MarginLeft, MarginRight         int32
	MarginTop, MarginBottom         int32
	ScoreSizeProportion             float32
	HeaderAndFooter                uint8
	Title, Subtitle                 string
	Artist, Album                   string
	Words, Music                    string
	WordsAndMusic                   string
	Copyright1, Copyright2          string
	PageNumber                      string
}

// DefaultPageSetup matches the values Guitar Pro itself writes for a new
// song's page setup.
func DefaultPageSetup() PageSetup {
	return PageSetup{
		PageWidth: 210, PageHeight: 297,
		MarginLeft: 10, MarginRight: 10,
		MarginTop: 15, MarginBottom: 10,
		ScoreSizeProportion: 1.0,
		HeaderAndFooter:     0xFF,
		Title:               "%TITLE%",
		Subtitle:            "%SUBTITLE%",
		Artist:              "%ARTIST%",
		Album:               "%ALBUM%",
		Words:               "Words by %WORDS%",
		Music:               "Music by %MUSIC%",
		WordsAndMusic:       "Words & Music by %WORDSMUSIC%",
		Copyright1:          "Copyright %COPYRIGHT%",
		Copyright2:          "All Rights Reserved - International Copyright Secured",
		PageNumber:          "Page %N%/%P%",
	}
}

// Lyrics is the v5 lyrics block: up to five lines, each a measure-number ->
// syllable-text map (a BTreeMap in the source; Go's map plus a sorted key
// scan on read/write stands in for the ordering).
type Lyrics struct {
	TrackChoice int32
	Lines       [5]LyricLine
}

// LyricLine is one lyric line's starting measure and syllable map.
type LyricLine struct {
	StartingMeasure int32
	Syllables       map[int]string
}

// RepeatGroup is a derived aggregation over consecutive measure headers that
// form one repeat block.
type RepeatGroup struct {
	Headers  []int // 1-based MeasureHeader.Number values
	Openings []int
	Closings []int
	Closed   bool
}
