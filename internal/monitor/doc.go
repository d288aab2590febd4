// Package monitor turns host telemetry into dashboard frames.
//
// # Key Components
//
//	Sampler        - reads every telemetry source once per poll
//	HistoryWindow  - time-bounded rate history used for the peak readout
//	Loop           - sample, render, sleep until the stop flag is set
//
// # Rates
//
// Interface counters are cumulative and wrap at a fixed width (CounterMax).
// Each poll turns the counter advance since the previous poll into a
// RateSpeed, so throughput is always reported over the real elapsed time
// rather than the nominal interval.
//
// # Poll cycle
//
// The loop is strictly sequential:
//
//  1. check the stop flag (set asynchronously by NotifyStop)
//  2. Sampler.Sample reads network, CPU, memory and temperature
//  3. the frame is drawn by lcd.Renderer
//  4. sleep for the interval (500ms by default)
//
// A telemetry failure ends the loop with an error. A missing interface is
// never reported as idle. On a normal stop the display and its backlight are
// switched off.
package monitor
