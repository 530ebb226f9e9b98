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
	"context"

	"golang.org/x/sync/errgroup"
)

// ParJob represents an atomic unit of work which is independent of every other
// job in the same batch.
type ParJob interface {
	Run(ctx context.Context) error
}

// ParExec executes a batch of independent jobs in parallel, using at most
// limit go-routines (or one per job if limit is zero).  The first error
// encountered cancels the context given to the remaining jobs, and is returned.
func ParExec[J ParJob](ctx context.Context, jobs []J, limit int) error {
	g, gCtx := errgroup.WithContext(ctx)
	//
	if limit > 0 {
		g.SetLimit(limit)
	}
	//
	for _, job := range jobs {
		job := job
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return err
			}
			//
			return job.Run(gCtx)
		})
	}
	//
	return g.Wait()
}
