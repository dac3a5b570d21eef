package consts

const (
	KELVIN = 273.15 // Kelvin temperature (K)

	CU_RESISTIVITY = 1.68e-8 // Copper resistivity (Ohm*m)
	MIL            = 25.4e-6 // One mil (m)
	CU_OZ_UM       = 35.0    // Copper thickness of 1 oz/ft^2 (um)
)

const (
	IPC2221_K_OUTER = 0.048 // IPC-2221A trace current constant, outer layers
	IPC2221_K_INNER = 0.024 // IPC-2221A trace current constant, inner layers
	IPC2221_B       = 0.44  // Temperature rise exponent
	IPC2221_C       = 0.725 // Cross section exponent

	NE555_LN2   = 0.693 // ln(2) as used in the NE555 datasheet
	LM2596_VREF = 1.23  // LM2596 feedback reference voltage (V)
)

const (
	MP2307_VREF = 0.925 // MP2307 feedback reference voltage (V)
	MP2307_FSW  = 325e3 // MP2307 switching frequency (Hz)
)
