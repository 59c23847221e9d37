package barrier_test

import (
	"sync"
	"sync/atomic"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/sparks/internal/barrier"
)

// waitAsync runs b.Wait on a new goroutine and delivers its result.
func waitAsync(b *barrier.Barrier) <-chan bool {
	done := make(chan bool, 1)
	go func() { done <- b.Wait() }()
	return done
}

var _ = Describe("Barrier", func() {
	It("clamps the party count to one", func() {
		b := barrier.New(0)
		Expect(b.Parties()).To(Equal(1))
		Expect(b.Wait()).To(BeTrue())
		Expect(b.Generation()).To(Equal(uint64(1)))
	})

	It("holds parties until the last one arrives", func() {
		b := barrier.New(3)
		first := waitAsync(b)
		second := waitAsync(b)

		Consistently(first, 50*time.Millisecond).ShouldNot(Receive())
		Consistently(second, 10*time.Millisecond).ShouldNot(Receive())

		Expect(b.Wait()).To(BeTrue())
		Eventually(first).Should(Receive(BeTrue()))
		Eventually(second).Should(Receive(BeTrue()))
	})

	It("releases a whole generation before any party proceeds to the next", func() {
		const (
			parties     = 4
			generations = 200
		)
		b := barrier.New(parties)

		var arrived [generations]atomic.Int32
		var violations atomic.Int32
		var wg sync.WaitGroup

		for p := 0; p < parties; p++ {
			wg.Add(1)
			go func() {
				defer GinkgoRecover()
				defer wg.Done()
				for g := 0; g < generations; g++ {
					arrived[g].Add(1)
					b.Wait()
					if arrived[g].Load() != parties {
						violations.Add(1)
					}
				}
			}()
		}

		wg.Wait()
		Expect(violations.Load()).To(BeZero())
		Expect(b.Generation()).To(Equal(uint64(generations)))
	})

	Context("when dropped", func() {
		It("releases blocked waiters without the full party count", func() {
			b := barrier.New(5)
			waiters := []<-chan bool{waitAsync(b), waitAsync(b)}

			Consistently(waiters[0], 20*time.Millisecond).ShouldNot(Receive())
			b.Drop()

			for _, w := range waiters {
				Eventually(w).Should(Receive(BeFalse()))
			}
			Expect(b.Dropped()).To(BeTrue())
		})

		It("returns immediately for later waiters", func() {
			b := barrier.New(2)
			b.Drop()

			Eventually(waitAsync(b)).Should(Receive(BeFalse()))
			Eventually(waitAsync(b)).Should(Receive(BeFalse()))
		})

		It("never deadlocks when racing the threshold arrival", func() {
			for round := 0; round < 100; round++ {
				const parties = 4
				b := barrier.New(parties)

				var wg sync.WaitGroup
				for p := 0; p < parties; p++ {
					wg.Add(1)
					go func() {
						defer wg.Done()
						b.Wait()
					}()
				}
				go b.Drop()

				done := make(chan struct{})
				go func() {
					wg.Wait()
					close(done)
				}()
				Eventually(done, time.Second).Should(BeClosed())
			}
		})
	})
})
