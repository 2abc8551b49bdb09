package mcgen

import (
	"errors"
	"fmt"
	"strings"
)

const (
	// MaxSignalStrength is the highest reading a comparator can output.
	MaxSignalStrength = 15

	// StackSize is the maximum number of redstone dust in one slot.
	StackSize = 64

	barrelID = "minecraft:barrel"
	fillItem = "minecraft:redstone"
)

// signalItemCounts holds the number of items a barrel needs for each
// comparator reading. The values are baked in, not derived from the
// comparator formula: existing builds depend on these exact counts.
var signalItemCounts = [MaxSignalStrength + 1]int{
	0, 1, 124, 247, 371, 494, 618, 741, 864, 988, 1111, 1235, 1358, 1482, 1605, 1728,
}

// ErrSignalOutOfRange is the sentinel wrapped by InvalidSignalError.
var ErrSignalOutOfRange = errors.New("signal strength out of range")

// InvalidSignalError reports a signal strength outside [0,15].
type InvalidSignalError struct {
	Signal int
}

func (e *InvalidSignalError) Error() string {
	return fmt.Sprintf("signal strength %d: must be within 0..%d", e.Signal, MaxSignalStrength)
}

func (e *InvalidSignalError) Unwrap() error { return ErrSignalOutOfRange }

// ValidateSignal returns an *InvalidSignalError when signal has no table entry.
func ValidateSignal(signal int) error {
	if signal < 0 || signal > MaxSignalStrength {
		return &InvalidSignalError{Signal: signal}
	}
	return nil
}

// SlotEntry is one stack of items inside the barrel.
type SlotEntry struct {
	Slot  int
	Count int
	ID    string
}

func (s SlotEntry) String() string {
	return fmt.Sprintf("{Slot:%db, Count:%d, id:%q}", s.Slot, s.Count, s.ID)
}

// ItemCount returns how many items produce the given comparator reading.
// Signals without a table entry yield 0.
func ItemCount(signal int) int {
	if ValidateSignal(signal) != nil {
		return 0
	}
	return signalItemCounts[signal]
}

// PackSlots splits the item count for signal into stacks of at most
// StackSize. Full stacks are only emitted for signals above 1; the
// remainder goes into the slot after the last full stack.
func PackSlots(signal int) []SlotEntry {
	n := ItemCount(signal)
	full, rem := n/StackSize, n%StackSize

	var entries []SlotEntry
	lastSlot := -1
	if signal > 1 {
		for i := 0; i < full; i++ {
			entries = append(entries, SlotEntry{Slot: i, Count: StackSize, ID: fillItem})
			lastSlot = i
		}
	}
	if rem != 0 {
		entries = append(entries, SlotEntry{Slot: lastSlot + 1, Count: rem, ID: fillItem})
	}
	return entries
}

// EncodeSignal renders a barrel block state whose contents make a
// comparator read signal, e.g.
//
//	minecraft:barrel{Items:[{Slot:0b, Count:1, id:"minecraft:redstone"}]}
//
// Out of range signals silently produce an empty barrel; use
// EncodeSignalStrict at input boundaries.
func EncodeSignal(signal int) string {
	entries := PackSlots(signal)
	records := make([]string, len(entries))
	for i, e := range entries {
		records[i] = e.String()
	}

	var sb strings.Builder
	sb.WriteString(barrelID)
	sb.WriteString("{Items:[")
	sb.WriteString(strings.Join(records, ","))
	sb.WriteString("]}")
	return sb.String()
}

// EncodeSignalStrict is EncodeSignal with range validation.
func EncodeSignalStrict(signal int) (string, error) {
	if err := ValidateSignal(signal); err != nil {
		return "", err
	}
	return EncodeSignal(signal), nil
}
