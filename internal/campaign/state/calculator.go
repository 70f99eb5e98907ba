// Package state computes campaign state snapshots by replaying the ordered
// campaign event journal over the ordered list of entries.
//
// The calculator is a pure function: it owns a private accumulator for the
// duration of one call, performs no I/O, and is safe for concurrent use as
// long as each call receives its own inputs.
package state

import (
	"github.com/louisbranch/playtally/internal/campaign/domain"
	"github.com/louisbranch/playtally/internal/campaign/event"
)

// PlayerResultRef is the projection of one player result needed for replay.
type PlayerResultRef struct {
	ID         string
	PlayerID   string
	PlayerName string
}

// EntryRef is the projection of one entry needed for replay. Results appear
// in table order; that order drives player section ordering in snapshots.
type EntryRef struct {
	ID      string
	Results []PlayerResultRef
}

// KeyRef is the projection of a campaign key carried on each event.
type KeyRef struct {
	ID                    string
	Name                  string
	Type                  domain.KeyType
	Scope                 domain.KeyScope
	ScopedToCustomFieldID string
}

// Event is one decoded journal instruction ready for replay. Payload is nil
// when the stored payload did not decode; such events replay as no-ops.
type Event struct {
	EntryID        string
	PlayerResultID string
	Key            KeyRef
	// CustomFieldValueID partitions state when the key is custom-field scoped.
	CustomFieldValueID string
	// CustomFieldValueLabel labels the scoped sub-section (e.g. a character name).
	CustomFieldValueLabel string
	Payload               event.Payload
}

// Section is one grouped block of resolved key values in a snapshot: the
// Global section (PlayerID empty) or one player's section. Entries maps key
// names to their current values; only keys with non-empty state appear.
type Section struct {
	Label    string          `json:"label"`
	PlayerID string          `json:"playerId,omitempty"`
	Entries  map[string]any  `json:"entries"`
	Scoped   []ScopedSection `json:"scoped,omitempty"`
}

// ScopedSection is a sub-section grouping custom-field-scoped key values
// under the field value's label.
type ScopedSection struct {
	Label   string         `json:"label"`
	Entries map[string]any `json:"entries"`
}

// ComputeEntryStates replays events over entries and returns, per entry, the
// ordered section list reflecting all state accumulated up to and including
// that entry.
//
// Entries must be supplied in chronological order; events must be supplied in
// causal order and are never re-sorted here. Events referencing entries not
// present in entries are not visible in any snapshot. The result holds
// exactly one element per supplied entry; entries with no state map to an
// empty, never nil, section list.
func ComputeEntryStates(entries []EntryRef, events []Event) map[string][]Section {
	byEntry := make(map[string][]Event, len(entries))
	for _, ev := range events {
		byEntry[ev.EntryID] = append(byEntry[ev.EntryID], ev)
	}

	acc := newAccumulator()
	result := make(map[string][]Section, len(entries))
	for _, entry := range entries {
		for _, ev := range byEntry[entry.ID] {
			acc.apply(entry, ev)
		}
		result[entry.ID] = acc.snapshot(entry)
	}
	return result
}

// bucketKey identifies one unit of independent accumulation: entry-global
// state (empty playerID), one player's state, or one player+field-value pair.
// Player-scoped state is keyed by the owning player, not the per-entry
// result, so values carry forward across entries.
type bucketKey struct {
	playerID           string
	customFieldValueID string
}

type accumulator struct {
	buckets map[bucketKey]*bucket
	// order records bucket creation order; scoped sub-sections render in the
	// order their first event was observed.
	order []bucketKey
}

type bucket struct {
	// label is the custom-field-value label for scoped buckets.
	label  string
	order  []string
	values map[string]*keyValue
}

// keyValue holds the current value of one key within one bucket.
type keyValue struct {
	kind domain.KeyType
	set  bool
	str  string
	num  float64
	// list keeps insertion order; member tracks set semantics.
	list   []string
	member map[string]bool
	counts map[string]int64
}

func newAccumulator() *accumulator {
	return &accumulator{buckets: make(map[bucketKey]*bucket)}
}

func (acc *accumulator) bucket(key bucketKey) *bucket {
	if existing, ok := acc.buckets[key]; ok {
		return existing
	}
	created := &bucket{values: make(map[string]*keyValue)}
	acc.buckets[key] = created
	acc.order = append(acc.order, key)
	return created
}

func (b *bucket) value(name string, kind domain.KeyType) *keyValue {
	if existing, ok := b.values[name]; ok {
		return existing
	}
	created := &keyValue{kind: kind}
	b.values[name] = created
	b.order = append(b.order, name)
	return created
}

// apply folds one event into the accumulator. Inconsistent references and
// unrecognized payloads are silently ignored so the journal stays replayable
// across schema drift.
func (acc *accumulator) apply(entry EntryRef, ev Event) {
	if ev.Payload == nil {
		return
	}

	playerID := ""
	if ev.Key.Scope == domain.KeyScopePlayerResult {
		result, ok := findResult(entry, ev.PlayerResultID)
		if !ok {
			return
		}
		playerID = result.PlayerID
	}

	customFieldValueID := ""
	if ev.Key.ScopedToCustomFieldID != "" {
		if ev.CustomFieldValueID == "" {
			return
		}
		customFieldValueID = ev.CustomFieldValueID
	}

	b := acc.bucket(bucketKey{playerID: playerID, customFieldValueID: customFieldValueID})
	if customFieldValueID != "" && ev.CustomFieldValueLabel != "" {
		b.label = ev.CustomFieldValueLabel
	}

	value := b.value(ev.Key.Name, ev.Key.Type)
	if value.kind != ev.Key.Type {
		return
	}
	value.merge(ev.Payload)
}

func findResult(entry EntryRef, resultID string) (PlayerResultRef, bool) {
	for _, result := range entry.Results {
		if result.ID == resultID {
			return result, true
		}
	}
	return PlayerResultRef{}, false
}

// merge applies one payload using the per-type rules. Variants that do not
// match the value's kind fall through as no-ops.
func (v *keyValue) merge(payload event.Payload) {
	switch p := payload.(type) {
	case event.StringReplace:
		if v.kind != domain.KeyTypeString {
			return
		}
		v.str = p.Value
		v.set = true
	case event.NumberReplace:
		if v.kind != domain.KeyTypeNumber {
			return
		}
		v.num = p.Amount
		v.set = true
	case event.NumberIncrease:
		if v.kind != domain.KeyTypeNumber {
			return
		}
		v.num += p.Amount
		v.set = true
	case event.NumberDecrease:
		if v.kind != domain.KeyTypeNumber {
			return
		}
		v.num -= p.Amount
		v.set = true
	case event.ListAdd:
		if v.kind != domain.KeyTypeList {
			return
		}
		if v.member == nil {
			v.member = make(map[string]bool)
		}
		for _, value := range p.Values {
			if v.member[value] {
				continue
			}
			v.member[value] = true
			v.list = append(v.list, value)
		}
	case event.ListRemove:
		if v.kind != domain.KeyTypeList {
			return
		}
		for _, value := range p.Values {
			if !v.member[value] {
				continue
			}
			delete(v.member, value)
			v.list = removeString(v.list, value)
		}
	case event.CountedListAdd:
		if v.kind != domain.KeyTypeCountedList {
			return
		}
		if v.counts == nil {
			v.counts = make(map[string]int64)
		}
		for _, item := range p.Items {
			v.counts[item.Item] += item.Quantity
		}
	case event.CountedListRemove:
		if v.kind != domain.KeyTypeCountedList {
			return
		}
		for _, item := range p.Items {
			if _, ok := v.counts[item.Item]; !ok {
				continue
			}
			v.counts[item.Item] -= item.Quantity
			// Never expose a zero or negative count.
			if v.counts[item.Item] <= 0 {
				delete(v.counts, item.Item)
			}
		}
	}
}

func removeString(values []string, target string) []string {
	filtered := values[:0]
	for _, value := range values {
		if value != target {
			filtered = append(filtered, value)
		}
	}
	return filtered
}

// snapshot assembles the ordered section list for one entry: the Global
// section first when non-empty, then one section per player result on this
// entry in table order, for players with any accumulated state.
func (acc *accumulator) snapshot(entry EntryRef) []Section {
	sections := []Section{}

	if global, ok := acc.section("Global", "", ""); ok {
		sections = append(sections, global)
	}
	for _, result := range entry.Results {
		if section, ok := acc.section(result.PlayerName, result.PlayerID, result.PlayerID); ok {
			sections = append(sections, section)
		}
	}
	return sections
}

// section builds one output section for an owner (empty owner = Global).
// The bool is false when the owner has no non-empty state at all.
func (acc *accumulator) section(label, sectionPlayerID, owner string) (Section, bool) {
	entries := map[string]any{}
	if direct, ok := acc.buckets[bucketKey{playerID: owner}]; ok {
		entries = direct.snapshotEntries()
	}

	var scoped []ScopedSection
	for _, key := range acc.order {
		if key.playerID != owner || key.customFieldValueID == "" {
			continue
		}
		b := acc.buckets[key]
		scopedEntries := b.snapshotEntries()
		if len(scopedEntries) == 0 {
			continue
		}
		scopedLabel := b.label
		if scopedLabel == "" {
			scopedLabel = key.customFieldValueID
		}
		scoped = append(scoped, ScopedSection{Label: scopedLabel, Entries: scopedEntries})
	}

	if len(entries) == 0 && len(scoped) == 0 {
		return Section{}, false
	}
	return Section{
		Label:    label,
		PlayerID: sectionPlayerID,
		Entries:  entries,
		Scoped:   scoped,
	}, true
}

// snapshotEntries copies every non-empty value in the bucket so later events
// cannot mutate an already returned snapshot.
func (b *bucket) snapshotEntries() map[string]any {
	entries := map[string]any{}
	for _, name := range b.order {
		if snapshot, ok := b.values[name].snapshotValue(); ok {
			entries[name] = snapshot
		}
	}
	return entries
}

// snapshotValue returns an immutable copy of the current value, or false when
// the value is empty and must be omitted from the section.
func (v *keyValue) snapshotValue() (any, bool) {
	switch v.kind {
	case domain.KeyTypeString:
		if !v.set || v.str == "" {
			return nil, false
		}
		return v.str, true
	case domain.KeyTypeNumber:
		if !v.set {
			return nil, false
		}
		return v.num, true
	case domain.KeyTypeList:
		if len(v.list) == 0 {
			return nil, false
		}
		return append([]string(nil), v.list...), true
	case domain.KeyTypeCountedList:
		if len(v.counts) == 0 {
			return nil, false
		}
		counts := make(map[string]int64, len(v.counts))
		for item, count := range v.counts {
			counts[item] = count
		}
		return counts, true
	default:
		return nil, false
	}
}
