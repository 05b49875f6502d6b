package convert

// NumberingPair ties a minted numbering id to the abstract definition that
// backs it in the document's numbering catalog.
type NumberingPair struct {
	NumID         int
	AbstractNumID int
}

// Allocator mints numbering ids for lists. Both counters start one past the
// maxima already present in the template catalog, so minted ids never collide
// with existing definitions. One allocator serves exactly one conversion;
// concurrent conversions each need their own.
type Allocator struct {
	nextNum        int
	nextAbstract   int
	bulletAbstract int
	minted         []NumberingPair
}

// NewAllocator seeds an allocator from the catalog's current maximum
// numbering and abstract-numbering ids, plus the abstract id of the shared
// bullet-list definition.
func NewAllocator(maxNumID, maxAbstractNumID, bulletAbstract int) *Allocator {
	return &Allocator{
		nextNum:        maxNumID + 1,
		nextAbstract:   maxAbstractNumID + 1,
		bulletAbstract: bulletAbstract,
	}
}

// AllocBullet mints a numbering id backed by the shared bullet definition.
// The abstract counter does not advance.
func (a *Allocator) AllocBullet() NumberingPair {
	p := NumberingPair{NumID: a.nextNum, AbstractNumID: a.bulletAbstract}
	a.nextNum++
	a.minted = append(a.minted, p)
	return p
}

// AllocOrdered mints a numbering id together with a fresh abstract id.
func (a *Allocator) AllocOrdered() NumberingPair {
	p := NumberingPair{NumID: a.nextNum, AbstractNumID: a.nextAbstract}
	a.nextNum++
	a.nextAbstract++
	a.minted = append(a.minted, p)
	return p
}

// Minted returns every pair allocated so far, in mint order.
func (a *Allocator) Minted() []NumberingPair {
	return a.minted
}
