package main

import (
	"flag"

	"journal_insights/internal/ingest"
	"journal_insights/internal/lexicon"
)

// A small sample journal exercising the whole pipeline: eight months, a
// deterioration stretch in the middle, and a partial recovery.
const demoJournal = `2024-01-05
Walked along the river this morning. I felt calm and a little proud of how the week went. Dinner with my friend was fun.

2024-01-19
Busy day at the office but a good one. I enjoyed the quiet evening and I'm grateful for it.

2024-02-03
I feel rested. Slept well, laughed a lot at lunch. Looking forward to the weekend trip.

2024-02-17
Some overtime before the deadline, a bit tired, but still hopeful about the project.

2024-03-08
Couldn't sleep properly this week. Headache most of the afternoon. I keep rereading my own emails. Deadline moved again.

2024-03-22
Argument with my boss about the schedule. I felt ignored. Tired and worried, no appetite at dinner.

2024-04-05
Woke up at 3am again. Everything feels heavier. I notice I avoid people at work. The noise in the open office is unbearable some days.

2024-04-19
Another nightmare. Exhausted. Sometimes it all seems meaningless and I wonder what's the point of the reports I write.

2024-05-03
Stomach ache before the morning meeting. Alone at lunch again. I felt worthless after the review, like I should just give up.

2024-05-17
Slept badly. My chest tight during the presentation. I keep thinking I'm broken somehow.

2024-06-07
Took a long walk instead of checking email. Calm, for an hour at least. I noticed the light on the water and felt almost peaceful.

2024-06-21
Dinner with my friend for the first time in months. We laughed. I'm tired but glad I went.

2024-07-05
Work is still work, the deadline still looms, but I handled the meeting fine. I feel steadier this week.

2024-07-19
A good stretch. Slept well most nights, enjoyed the small things, grateful for the quiet mornings.

2024-08-02
Happy day off. The trip was fun and I felt proud of how far the spring is behind me.

2024-08-16
Calm week. Some worry about autumn, but I'm hopeful, and I notice I write about myself less grimly now.
`

func runDemo() {
	fs := flag.NewFlagSet("demo", flag.ExitOnError)
	out := fs.String("out", "", "write the JSON report to a file instead of stdout")
	fs.Parse(flagArgs())

	entries := ingest.SplitEntries(demoJournal)
	report := buildReport(entries, lexicon.Default(), 0, "monthly")
	emitReport(report, *out)
}
