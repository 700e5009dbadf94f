package book

// ThemeSpec describes one thematic chapter file and its sections.
type ThemeSpec struct {
	Filename     string
	ChapterTitle string
	Subsections  []string
}

// DefaultThemes is the fixed chapter/section catalog the book is built from.
var DefaultThemes = []ThemeSpec{
	{
		Filename:     "complex_analysis.tex",
		ChapterTitle: "Complex Analysis",
		Subsections: []string{
			"Complex Variables and Complex-valued Functions",
			"Analytic Functions and Integration along Contours",
			"Residue Calculus",
			"Extreme-, Stationary- and Saddle-Point Methods (*)",
		},
	},
	{
		Filename:     "fourier_analysis.tex",
		ChapterTitle: "Fourier Analysis",
		Subsections: []string{
			"The Fourier Transform and Inverse Fourier Transform",
			"Properties of the 1-D Fourier Transform",
			"Dirac's delta-function",
			"Closed-form Representation for Select Fourier Transforms",
			"Fourier Series: Introduction",
			"Properties of the Fourier Series",
			"Riemann–Lebesgue Lemma",
			"Gibbs Phenomenon",
			"Laplace Transform",
			"From Differential to Algebraic Equations with FT, FS and LT",
		},
	},
	{
		Filename:     "ode.tex",
		ChapterTitle: "Ordinary Differential Equations",
		Subsections: []string{
			"ODEs: Simple Cases",
			"Direct Methods for Solving Linear ODEs",
			"Linear Dynamics via the Green Function",
			"Linear Static Problems",
			"Sturm–Liouville (Spectral) Theory",
			"Phase Space Dynamics for Conservative and Perturbed Systems",
		},
	},
	{
		Filename:     "pde.tex",
		ChapterTitle: "Partial Differential Equations",
		Subsections: []string{
			"First-Order PDE: Method of Characteristics",
			"Classification of Linear Second-Order PDEs",
			"Elliptic PDEs: Method of Green Function",
			"Waves in a Homogeneous Medium: Hyperbolic PDE (*)",
			"Diffusion Equation",
			"Boundary Value Problems: Fourier Method",
			"Case Study: Burgers' Equation (*)",
		},
	},
}

// SectionKey identifies one (chapter, section) pair.
type SectionKey struct {
	Chapter string
	Section string
}

// ExampleKey identifies one planned example inside a section.
type ExampleKey struct {
	Chapter string
	Section string
	Index   int
}

// SectionPlan is the JSON shape stored under plans/<slug>.json. One plan is
// generated per section and cached; a cached plan is never regenerated.
type SectionPlan struct {
	SectionTitle string        `json:"section_title"`
	Narrative    string        `json:"narrative"`
	Examples     []PlanExample `json:"examples"`
}

// PlanExample is one planned example descriptor inside a SectionPlan.
type PlanExample struct {
	Title              string   `json:"title"`
	Summary            string   `json:"summary"`
	Teaches            string   `json:"teaches,omitempty"`
	DifficultyVariants []string `json:"difficulty_variants,omitempty"`
}

// ExampleOutput is the final two-part text extracted for one example.
type ExampleOutput struct {
	Title    string
	Inquiry  string
	Solution string
}
