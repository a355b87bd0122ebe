package combat

// Piste is the one-dimensional strip the bout is fenced on, [0, Length].
type Piste struct {
	Length int
	StartA int
	StartB int
}

func (p Piste) Contains(x int) bool { return x >= 0 && x <= p.Length }

func (p Piste) Clamp(x int) int {
	if x < 0 {
		return 0
	}
	if x > p.Length {
		return p.Length
	}
	return x
}

func (p Piste) Start(side Side) int {
	if side == SideA {
		return p.StartA
	}
	return p.StartB
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
