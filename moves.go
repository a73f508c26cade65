package twistycube

// Predefined quarter turns in the cube's own frame.
//
// Example:
//
//	lattice.Apply(twistycube.R)
//	ctrl.Enqueue(twistycube.UPrime)
var (
	// Right face moves
	R      = Move{Axis: AxisX, Layer: 2, Direction: Negative} // Right clockwise
	RPrime = R.Inverse()                                      // Right counter-clockwise

	// Left face moves
	L      = Move{Axis: AxisX, Layer: 0, Direction: Positive}
	LPrime = L.Inverse()

	// Up face moves
	U      = Move{Axis: AxisY, Layer: 2, Direction: Negative}
	UPrime = U.Inverse()

	// Down face moves
	D      = Move{Axis: AxisY, Layer: 0, Direction: Positive}
	DPrime = D.Inverse()

	// Front face moves
	F      = Move{Axis: AxisZ, Layer: 2, Direction: Negative}
	FPrime = F.Inverse()

	// Back face moves
	B      = Move{Axis: AxisZ, Layer: 0, Direction: Positive}
	BPrime = B.Inverse()

	// Slice moves
	M      = Move{Axis: AxisX, Layer: 1, Direction: Positive} // follows L
	MPrime = M.Inverse()
	E      = Move{Axis: AxisY, Layer: 1, Direction: Positive} // follows D
	EPrime = E.Inverse()
	S      = Move{Axis: AxisZ, Layer: 1, Direction: Negative} // follows F
	SPrime = S.Inverse()
)

// Sexy move: R U R' U' - one of the most common algorithms
var SexyMove = []Move{R, U, RPrime, UPrime}

// Inverse sexy move: U R U' R'
var InverseSexyMove = []Move{U, R, UPrime, RPrime}

// T-perm algorithm, with R2 written as two quarter turns.
var TPerm = []Move{R, U, RPrime, UPrime, RPrime, F, R, R, UPrime, RPrime, UPrime, R, U, RPrime, FPrime}
