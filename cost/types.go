package cost

// PartitionCost accumulates the counts and running score spec.md §4.3
// defines for one candidate partition.
type PartitionCost struct {
	MapRight, MapLeft   int
	PartRight, PartLeft int
	Splits              int
	Iffy                int
	NearMiss            int
	Total               float64
}
