package domain

import "time"

// DailyBucket aggregates one window day. MoodAvg and StressAvg are nil,
// never zero, for days without numeric values.
type DailyBucket struct {
	Tasks     int
	Breaks    int
	Moods     int
	MoodAvg   *float64
	StressAvg *float64
}

// WeeklyBuckets is the per-day breakdown for the trailing 7-day window.
// It is ephemeral: recomputed from raw records per request, never stored.
type WeeklyBuckets struct {
	Window Window
	Days   [WindowDays]DailyBucket
}

// ComputeWeeklyBuckets buckets raw task/break/mood records into the 7-day
// window anchored at now. The inputs may be filtered wider than the
// window; records resolving outside it, or with no usable timestamp, are
// silently dropped. Only work-type tasks count toward task buckets.
func ComputeWeeklyBuckets(now time.Time, tasks []Task, breaks []Break, moods []MoodCheckin) WeeklyBuckets {
	wb := WeeklyBuckets{Window: NewWindow(now)}

	var moodSum, stressSum [WindowDays]float64
	var moodVals, stressVals [WindowDays]int

	for _, task := range tasks {
		if !task.IsWork() {
			continue
		}
		ts, ok := task.BucketTime()
		if !ok {
			continue
		}
		if i := wb.Window.IndexOf(ts); i >= 0 {
			wb.Days[i].Tasks++
		}
	}

	for _, br := range breaks {
		ts, ok := br.BucketTime()
		if !ok {
			continue
		}
		if i := wb.Window.IndexOf(ts); i >= 0 {
			wb.Days[i].Breaks++
		}
	}

	for _, mood := range moods {
		ts, ok := mood.BucketTime()
		if !ok {
			continue
		}
		i := wb.Window.IndexOf(ts)
		if i < 0 {
			continue
		}
		// Every check-in counts toward the day, even without a numeric
		// value; averages are computed over numeric values only.
		wb.Days[i].Moods++
		if mood.Mood != nil {
			moodSum[i] += *mood.Mood
			moodVals[i]++
		}
		if mood.Stress != nil {
			stressSum[i] += *mood.Stress
			stressVals[i]++
		}
	}

	for i := 0; i < WindowDays; i++ {
		if moodVals[i] > 0 {
			avg := moodSum[i] / float64(moodVals[i])
			wb.Days[i].MoodAvg = &avg
		}
		if stressVals[i] > 0 {
			avg := stressSum[i] / float64(stressVals[i])
			wb.Days[i].StressAvg = &avg
		}
	}

	return wb
}

// Labels returns the weekday label per window slot.
func (wb WeeklyBuckets) Labels() []string {
	return wb.Window.Labels()
}

// TasksPerDay returns the work-task count per window slot.
func (wb WeeklyBuckets) TasksPerDay() []int {
	counts := make([]int, WindowDays)
	for i, d := range wb.Days {
		counts[i] = d.Tasks
	}
	return counts
}

// BreaksPerDay returns the break count per window slot.
func (wb WeeklyBuckets) BreaksPerDay() []int {
	counts := make([]int, WindowDays)
	for i, d := range wb.Days {
		counts[i] = d.Breaks
	}
	return counts
}

// MoodCountsPerDay returns the check-in count per window slot.
func (wb WeeklyBuckets) MoodCountsPerDay() []int {
	counts := make([]int, WindowDays)
	for i, d := range wb.Days {
		counts[i] = d.Moods
	}
	return counts
}

// MoodAvgPerDay returns the nullable mood average per window slot.
func (wb WeeklyBuckets) MoodAvgPerDay() []*float64 {
	avgs := make([]*float64, WindowDays)
	for i, d := range wb.Days {
		avgs[i] = d.MoodAvg
	}
	return avgs
}

// StressAvgPerDay returns the nullable stress average per window slot.
func (wb WeeklyBuckets) StressAvgPerDay() []*float64 {
	avgs := make([]*float64, WindowDays)
	for i, d := range wb.Days {
		avgs[i] = d.StressAvg
	}
	return avgs
}

// ActiveDays returns the window days that hold at least one qualifying
// work task, in ascending order. These feed the streak engine.
func (wb WeeklyBuckets) ActiveDays() []DayKey {
	days := make([]DayKey, 0, WindowDays)
	for i, d := range wb.Days {
		if d.Tasks > 0 {
			days = append(days, wb.Window.Day(i))
		}
	}
	return days
}
