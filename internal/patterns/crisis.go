package patterns

import "github.com/ppiankov/storyintake/internal/model"

func crisisTables() []CrisisTable {
	return []CrisisTable{
		{
			Domain: model.DomainHousing,
			Base:   0.70,
			Triggers: []Pattern{
				pat("housing:eviction", `(?i)\bevict(?:ion|ed|ing)?\b`, 0),
				pat("housing:homeless", `(?i)\bhomeless(?:ness)?\b`, 0),
				pat("housing:foreclosure", `(?i)\bforeclos(?:e|ure|ing)\b`, 0),
				pat("housing:behind_on_rent", `(?i)\bbehind on (?:the |my |our )?(?:rent|mortgage)\b`, 0),
				pat("housing:losing_home", `(?i)\blos(?:e|ing) (?:our|my|the) (?:home|house|apartment)\b`, 0),
				pat("housing:kicked_out", `(?i)\bkick(?:ed|ing)? (?:us|me) out\b`, 0),
			},
			Multipliers: []Pattern{
				pat("housing:on_the_street", `(?i)\b(?:on the streets?|sleeping in (?:my|our|the) car|nowhere to (?:go|stay|sleep))\b`, 1.25),
			},
		},
		{
			Domain: model.DomainMedical,
			Base:   0.70,
			Triggers: []Pattern{
				pat("medical:surgery", `(?i)\bsurger(?:y|ies)\b`, 0),
				pat("medical:hospital", `(?i)\bhospital(?:ized)?\b`, 0),
				pat("medical:emergency_room", `(?i)\bemergency room\b`, 0),
				pat("medical:cancer", `(?i)\b(?:cancer|chemo(?:therapy)?|tumou?r)\b`, 0),
				pat("medical:chronic", `(?i)\b(?:dialysis|insulin|diabet(?:es|ic))\b`, 0),
				pat("medical:medication", `(?i)\b(?:medications?|prescriptions?)\b`, 0),
				pat("medical:ambulance", `(?i)\bambulance\b`, 0),
			},
			Multipliers: []Pattern{
				pat("medical:life_threatening", `(?i)\b(?:life[- ]threatening|critical condition|intensive care|icu|heart attack|stroke|could die)\b`, 1.25),
			},
		},
		{
			Domain: model.DomainSafety,
			Base:   0.80,
			Triggers: []Pattern{
				pat("safety:abuse", `(?i)\b(?:abus(?:e|ed|ive|er)|domestic violence)\b`, 0),
				pat("safety:violence", `(?i)\bviolen(?:ce|t)\b`, 0),
				pat("safety:assault", `(?i)\b(?:assault(?:ed)?|beat(?:s|ing)? (?:me|us|her|him)|hit(?:s|ting)? (?:me|us|her|him))\b`, 0),
				pat("safety:stalking", `(?i)\bstalk(?:ed|er|ing)?\b`, 0),
				pat("safety:danger", `(?i)\b(?:in danger|afraid for (?:my|our) (?:life|lives|safety))\b`, 0),
				pat("safety:restraining_order", `(?i)\brestraining order\b`, 0),
			},
			Multipliers: []Pattern{
				pat("safety:weapon", `(?i)\b(?:weapon|gun|knife)\b`, 1.25),
			},
		},
		{
			Domain: model.DomainFinancial,
			Base:   0.50,
			Triggers: []Pattern{
				pat("financial:cant_pay", `(?i)\b(?:can't|cannot|can not|couldn't|unable to) (?:pay|afford)\b`, 0),
				pat("financial:overdue", `(?i)\b(?:overdue|past due|late fees?)\b`, 0),
				pat("financial:behind_on_bills", `(?i)\bbehind on (?:my |our |the )?(?:bills|payments)\b`, 0),
				pat("financial:debt", `(?i)\b(?:debt|collections)\b`, 0),
				pat("financial:shutoff", `(?i)\b(?:shut[- ]?off|disconnect(?:ed|ion)?)\b`, 0),
			},
			Multipliers: []Pattern{
				pat("financial:shutoff_notice", `(?i)\b(?:shut[- ]?off|disconnection|final) notice\b`, 1.25),
			},
		},
	}
}

func sharedMultipliers() []Pattern {
	return []Pattern{
		pat("dependents", `(?i)\b(?:kids?|children|child|sons?|daughters?|bab(?:y|ies)|toddler|infant|newborn|grandchild(?:ren)?|pregnant)\b`, 1.2),
		pat("immediate_timeframe", `(?i)\b(?:today|tonight|tomorrow|right now|immediately|asap|as soon as possible|within (?:24 )?hours|this (?:morning|afternoon|evening))\b`, 1.3),
		pat("deadline", `(?i)\b(?:deadline|due (?:on|by)|by `+weekday+`|by the (?:\d+(?:st|nd|rd|th)|end of)|(?:\d+|three|five|seven|ten|thirty)[- ]day notice|notice to (?:vacate|quit)|days? left)\b`, 1.15),
	}
}
