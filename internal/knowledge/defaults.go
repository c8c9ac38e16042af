package knowledge

// Default returns a Base over the built-in reference tables: seven
// coverage definitions and three illustrative plans. Premiums and limits
// are fictional and not quotations.
func Default() *Base {
	base, err := New(defaultCoverages(), defaultPlans())
	if err != nil {
		panic(err)
	}
	return base
}

func defaultCoverages() []Coverage {
	return []Coverage{
		{
			Key: "ctpl",
			Text: "**Compulsory Third Party Liability (CTPL)** is the only form of car " +
				"insurance required by law in the Philippines.  It pays for injuries or " +
				"death you cause to someone outside your vehicle, such as a pedestrian " +
				"or a passenger in another car.  The LTO requires CTPL before a vehicle " +
				"can be registered, and a standard policy typically covers up to PHP 100,000.",
		},
		{
			Key: "own damage",
			Text: "**Own Damage** coverage pays to repair or replace your vehicle if it " +
				"is damaged or stolen.  It is optional but strongly recommended because " +
				"CTPL only covers third parties and will not pay for your own car.  " +
				"Policies often have a deductible you must pay before the insurer covers " +
				"the remaining cost.",
		},
		{
			Key: "acts of god",
			Text: "**Acts of God (Acts of Nature)** coverage protects you from losses " +
				"caused by natural calamities such as typhoons, floods or earthquakes.  " +
				"Some policies cover volcanic eruptions and landslides as well.  Acts of " +
				"God coverage is usually an optional add-on and costs vary by vehicle value.",
		},
		{
			Key: "personal accident",
			Text: "**Personal Accident** coverage pays for medical expenses, disability " +
				"benefits and accidental death benefits for the driver and passengers of " +
				"the insured vehicle.  Some policies specify a fixed benefit per passenger " +
				"while others provide a lump sum.",
		},
		{
			Key: "malicious mischief",
			Text: "**Acts of Malicious Mischief** coverage pays to repair your car if it " +
				"is intentionally damaged by someone else.  Examples include vandalism, " +
				"keying the paint or damage caused by riots or civil unrest.",
		},
		{
			Key: "roadside assistance",
			Text: "**Roadside Assistance** covers services such as towing, fuel delivery " +
				"and jump-starting your vehicle when it breaks down.  Some policies also " +
				"include emergency medical evacuation.",
		},
		{
			Key: "loss of use",
			Text: "**Loss of Use** coverage reimburses you for the cost of renting a " +
				"replacement vehicle while your insured car is being repaired due to a " +
				"covered accident or theft.  Policies specify daily and maximum limits.",
		},
	}
}

func defaultPlans() []Plan {
	return []Plan{
		{
			Name:    "Basic",
			Premium: 1800,
			Description: "Our entry-level plan provides legally required CTPL protection " +
				"and offers affordable peace of mind for budget-conscious drivers.",
			Coverage: []string{"ctpl"},
			Limits: []Limit{
				{Coverage: "ctpl", Amount: 100_000},
			},
		},
		{
			Name:    "Standard",
			Premium: 7500,
			Description: "A balanced plan that adds own damage and Acts of God coverage " +
				"on top of CTPL.  Ideal for drivers who want broader protection without " +
				"paying for all the bells and whistles.",
			Coverage: []string{"ctpl", "own damage", "acts of god"},
			Limits: []Limit{
				{Coverage: "ctpl", Amount: 100_000},
				{Coverage: "own damage", Amount: 400_000},
				{Coverage: "acts of god", Amount: 300_000},
			},
		},
		{
			Name:    "Premium",
			Premium: 14000,
			Description: "Our most comprehensive plan which includes all available " +
				"coverage types.  Perfect for new or high-value vehicles and for owners " +
				"who want maximum peace of mind.",
			Coverage: []string{
				"ctpl",
				"own damage",
				"acts of god",
				"personal accident",
				"malicious mischief",
				"roadside assistance",
				"loss of use",
			},
			Limits: []Limit{
				{Coverage: "ctpl", Amount: 100_000},
				{Coverage: "own damage", Amount: 800_000},
				{Coverage: "acts of god", Amount: 600_000},
				{Coverage: "personal accident", Amount: 200_000},
				{Coverage: "malicious mischief", Amount: 300_000},
				{Coverage: "roadside assistance", Service: true},
				{Coverage: "loss of use", Amount: 2_500, PerDay: true},
			},
		},
	}
}
