// Package optimize contains the gradient-based fitting engine shared by the
// linear models: the Optimizer abstraction, epoch batch sampling,
// learning-rate schedules, and the fitting loop.
//
// The fitting loop is exposed as a Trajectory, a pull-based finite sequence
// of (weights, loss) entries. Each call to Next runs exactly one epoch on the
// caller's goroutine:
//
//	traj, err := optimize.NewTrajectory(objective, X, y, nil, cfg)
//	if err != nil {
//	    return err
//	}
//	for traj.Next() {
//	    e := traj.Entry()
//	    fmt.Println(e.Epoch, e.Loss)
//	}
//	if err := traj.Err(); err != nil {
//	    return err
//	}
//
// The training state is an explicit State value threaded through Step, so the
// loop can be exercised without a model.
package optimize
