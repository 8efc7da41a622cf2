// Package visualization renders optimization trajectories.
//
// A trajectory pulled from optimize.Trajectory is first turned into Frames
// with Record. Frames can then be:
//
//   - drawn as a loss curve PNG with SaveLossCurve (gonum/plot)
//   - drawn one fitted curve per frame with SaveFitFrames, the raw material
//     for an animation of gradient descent
//   - rendered as an interactive HTML chart with RenderHTML (go-echarts)
//   - exported as JSON lines with WriteJSONL for external tools
//
// Example:
//
//	traj, _ := model.FitTrajectory(X, y)
//	frames, err := visualization.Record(traj.All())
//	if err != nil { ... }
//	_ = visualization.SaveLossCurve(frames, "loss.png", visualization.DefaultSize)
package visualization
