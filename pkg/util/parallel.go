// Copyright Consensys Software Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0
package util

import (
	"sync"

	"go.uber.org/multierr"
)

// ParJob represents an atomic unit of work which may depend upon the
// completion of other jobs.
type ParJob interface {
	// Get the identifier of this job.
	Id() uint
	// Get the jobs on which this job depends.  In otherwords, all of the
	// returned jobs must be complete before this job can run.  Identifiers of
	// jobs not in the worklist are assumed to be already completed.
	Dependencies() []uint
	// Run this job
	Run() error
}

// ParExec executes a set of jobs in parallel using go-routines, such that no
// more than a given number of jobs run at any one time.  Jobs are executed in
// waves: every job whose dependencies are complete is run in the next wave.
// All errors arising in a wave are reported together, and no further waves
// are started after a wave fails.
func ParExec[J ParJob](worklist []J, workers uint) error {
	var (
		todo = initToDoList(worklist)
		wave []J
	)
	//
	workers = max(workers, 1)
	// Iterate until all jobs complete
	for len(worklist) > 0 {
		wave, worklist = selectWave(todo, worklist)
		// Execute next wave
		if err := runWave(wave, workers); err != nil {
			return err
		}
		// Mark all jobs in wave as done
		for _, j := range wave {
			todo[j.Id()] = false
		}
	}
	// Done
	return nil
}

// asyncErrors accumulates errors reported by concurrently executing jobs.
type asyncErrors struct {
	locker sync.Mutex
	errs   error
}

func (ae *asyncErrors) add(err error) {
	ae.locker.Lock()
	defer ae.locker.Unlock()

	ae.errs = multierr.Append(ae.errs, err)
}

func (ae *asyncErrors) errors() error {
	ae.locker.Lock()
	defer ae.locker.Unlock()

	return ae.errs
}

func runWave[J ParJob](wave []J, workers uint) error {
	var (
		wg   sync.WaitGroup
		errs asyncErrors
		sem  = make(chan struct{}, workers)
	)
	//
	for _, job := range wave {
		wg.Add(1)
		sem <- struct{}{}
		//
		go func(job J) {
			defer wg.Done()
			defer func() { <-sem }()
			//
			if err := job.Run(); err != nil {
				errs.add(err)
			}
		}(job)
	}
	//
	wg.Wait()
	//
	return errs.errors()
}

// Initialise the set of jobs which remain to be completed.
func initToDoList[J ParJob](jobs []J) []bool {
	n := uint(0)
	// Determine largest job identifier
	for _, j := range jobs {
		n = max(n, j.Id()+1)
	}
	// Construct todo list
	todo := make([]bool, n)
	// Initialise jobs
	for _, j := range jobs {
		todo[j.Id()] = true
	}
	// Done
	return todo
}

// Split the worklist into those jobs which are ready to run, and those which
// are not.  If no job is ready, then the dependencies are cyclic.
func selectWave[J ParJob](todo []bool, worklist []J) ([]J, []J) {
	var ready, rest []J
	//
	for _, j := range worklist {
		if readyJob(todo, j) {
			ready = append(ready, j)
		} else {
			rest = append(rest, j)
		}
	}
	//
	if len(ready) == 0 {
		panic("no job is ready to run")
	}
	//
	return ready, rest
}

// ReadyJob determines whether or not a given job is ready to run, or not.
// Specifically, a job is ready when all its dependencies have been completed.
func readyJob[J ParJob](todo []bool, job J) bool {
	for _, j := range job.Dependencies() {
		if j < uint(len(todo)) && todo[j] && j != job.Id() {
			// Dependent job remains to be done.
			return false
		}
	}
	// All dependencies done, so this job is ready.
	return true
}
