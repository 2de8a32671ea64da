package ring

import "github.com/zeebo/xxh3"

// Ring is a fixed-capacity FIFO of fixed-size byte slots backed by one contiguous buffer.
// It is not synchronized: callers serialize access themselves.
type Ring struct {
	buf        []byte
	sums       []uint64 // per-slot xxh3 checksums, nil when disabled
	slot       int
	capacity   int
	head, tail int // head: next read slot, tail: next write slot
	count      int
}

// New allocates a ring of capacity slots of slotSize bytes each.
// When checksum is true every stored slot carries an xxh3 checksum verified on Pop.
func New(capacity, slotSize int, checksum bool) *Ring {
	if capacity < 1 {
		capacity = 1
	}
	if slotSize < 1 {
		slotSize = 1
	}
	r := &Ring{
		buf:      make([]byte, capacity*slotSize),
		slot:     slotSize,
		capacity: capacity,
	}
	if checksum {
		r.sums = make([]uint64, capacity)
	}
	return r
}

// TryPush copies src (exactly one slot) into the tail slot. Returns false when full.
func (r *Ring) TryPush(src []byte) bool {
	if r.count == r.capacity { // full
		return false
	}
	off := r.tail * r.slot
	copy(r.buf[off:off+r.slot], src[:r.slot])
	if r.sums != nil {
		r.sums[r.tail] = xxh3.Hash(r.buf[off : off+r.slot])
	}
	r.tail = (r.tail + 1) % r.capacity
	r.count++
	return true
}

// TryPop copies the head slot into dst and frees it. Returns ok=false when empty
// and intact=false when the slot no longer matches its checksum.
func (r *Ring) TryPop(dst []byte) (ok, intact bool) {
	if r.count == 0 {
		return false, true
	}
	off := r.head * r.slot
	data := r.buf[off : off+r.slot]
	intact = r.sums == nil || xxh3.Hash(data) == r.sums[r.head]
	copy(dst[:r.slot], data)
	r.head = (r.head + 1) % r.capacity
	r.count--
	return true, intact
}

// Clear discards every stored slot.
func (r *Ring) Clear() {
	r.head, r.tail, r.count = 0, 0, 0
}

func (r *Ring) Len() int      { return r.count }
func (r *Ring) Cap() int      { return r.capacity }
func (r *Ring) SlotSize() int { return r.slot }
func (r *Ring) Full() bool    { return r.count == r.capacity }
func (r *Ring) Empty() bool   { return r.count == 0 }

// Mem returns the number of bytes the ring holds for its buffer and checksums.
func (r *Ring) Mem() int {
	return len(r.buf) + len(r.sums)*8
}

// Release drops the backing storage. The ring must not be used afterwards.
func (r *Ring) Release() {
	r.buf, r.sums = nil, nil
	r.Clear()
}
