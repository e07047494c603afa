package material

// Strengths in MPa, modulus in GPa, density in kg/m3, hardness in HB.
var builtin = []Record{
	{"AISI 1020 Steel", "Carbon Steel", 250, 380, 200, 0.29, 7850, 190, 111},
	{"AISI 1045 Steel", "Carbon Steel", 310, 565, 200, 0.29, 7850, 282, 163},
	{"AISI 4140 Steel", "Alloy Steel", 415, 655, 200, 0.29, 7850, 380, 197},
	{"AISI 4340 Steel", "Alloy Steel", 470, 745, 200, 0.29, 7850, 425, 217},
	{"AISI 316 Stainless Steel", "Stainless Steel", 205, 515, 200, 0.30, 8000, 240, 149},
	{"AISI 17-4 PH Stainless Steel", "Precipitation Hardening Steel", 1170, 1310, 196, 0.27, 7750, 550, 388},
	{"Aluminum 6061-T6", "Aluminum Alloy", 276, 310, 69, 0.33, 2700, 96, 95},
	{"Aluminum 7075-T6", "Aluminum Alloy", 503, 572, 71.7, 0.33, 2810, 159, 150},
	{"Titanium Ti-6Al-4V", "Titanium Alloy", 880, 950, 114, 0.32, 4430, 510, 334},
	{"Brass C36000", "Copper Alloy", 124, 310, 100, 0.33, 8500, 110, 85},
	{"Bronze C93200", "Copper Alloy", 172, 310, 103, 0.34, 8800, 124, 75},
	{"Cast Iron ASTM A48 Class 30", "Cast Iron", 200, 207, 100, 0.26, 7200, 68, 187},
	{"Ductile Iron ASTM A536 65-45-12", "Cast Iron", 310, 448, 169, 0.29, 7100, 220, 149},
	{"Inconel 718", "Superalloy", 1240, 1380, 200, 0.29, 8190, 620, 388},
	{"Tool Steel D2", "Tool Steel", 520, 690, 210, 0.27, 7700, 345, 217},
}
